package roboeyes

// Driver is the display controller interface. It mirrors the RoboEyes
// library calls one to one. Implementations must not block: they are called
// inline from the host loop while an action plays.
type Driver interface {
	Begin(width, height, frameRate int)
	Update()

	SetMood(mood Mood)
	SetPosition(position Position)

	SetWidth(left, right int)
	SetHeight(left, right int)
	SetBorderRadius(left, right int)
	SetSpaceBetween(space int)
	SetCyclops(on bool)

	SetCuriosity(on bool)
	SetSweat(on bool)

	Open()
	Close()
	AnimLaugh()
	AnimConfused()

	SetIdleMode(on bool, interval, variation int)
	SetHFlicker(on bool, amplitude uint8)
	SetVFlicker(on bool, amplitude uint8)
	SetAutoblinker(on bool, interval, variation int)
	SetDisplayColors(background, main uint8)
}

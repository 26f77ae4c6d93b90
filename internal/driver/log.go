package driver

// Log is a Driver that only logs the commands it receives.
type Log struct {
	Commands
	component string
	logger    Logger
}

// NewLog returns a logging driver for component.
func NewLog(logger Logger, component string) *Log {
	if logger == nil {
		logger = noopLogger{}
	}
	l := &Log{component: component, logger: logger}
	l.Commands = NewCommands(l.log)
	return l
}

func (l *Log) log(name string, params map[string]any) {
	args := []any{"component", l.component, "command", name}
	for _, k := range sortedKeys(params) {
		args = append(args, k, params[k])
	}
	l.logger.Info("robo eyes command", args...)
}

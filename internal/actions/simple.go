package actions

import (
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// OpenAction opens the eyes.
type OpenAction struct{ base }

// NewOpen creates an OpenAction.
func NewOpen(parent *roboeyes.Component) *OpenAction { return &OpenAction{base{parent}} }

func (a *OpenAction) Kind() Kind              { return KindOpen }
func (a *OpenAction) Play(_ templatable.Args) { a.parent.Open() }

// CloseAction closes the eyes.
type CloseAction struct{ base }

// NewClose creates a CloseAction.
func NewClose(parent *roboeyes.Component) *CloseAction { return &CloseAction{base{parent}} }

func (a *CloseAction) Kind() Kind              { return KindClose }
func (a *CloseAction) Play(_ templatable.Args) { a.parent.Close() }

// LaughAction plays the laugh animation.
type LaughAction struct{ base }

// NewLaugh creates a LaughAction.
func NewLaugh(parent *roboeyes.Component) *LaughAction { return &LaughAction{base{parent}} }

func (a *LaughAction) Kind() Kind              { return KindLaugh }
func (a *LaughAction) Play(_ templatable.Args) { a.parent.Laugh() }

// ConfusedAction plays the confused animation.
type ConfusedAction struct{ base }

// NewConfused creates a ConfusedAction.
func NewConfused(parent *roboeyes.Component) *ConfusedAction { return &ConfusedAction{base{parent}} }

func (a *ConfusedAction) Kind() Kind              { return KindConfused }
func (a *ConfusedAction) Play(_ templatable.Args) { a.parent.Confused() }

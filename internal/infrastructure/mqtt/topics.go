package mqtt

import (
	"fmt"
	"strings"
)

// TopicPrefix is the root of every RoboEyes topic.
//
// Topic hierarchy:
//
//	roboeyes/command/{node}/{component}   driver commands to a display
//	roboeyes/state/{node}/{component}     retained component state
//	roboeyes/script/{node}/{script}/run   script run requests
//	roboeyes/script/{node}/result         script run results
//	roboeyes/system/{node}/status         retained online/offline status (LWT)
const TopicPrefix = "roboeyes"

// Topics provides builders for RoboEyes MQTT topics.
//
//	topic := mqtt.Topics{}.Command("desk", "eyes1")
//	// roboeyes/command/desk/eyes1
type Topics struct{}

// Command returns the topic a component's driver commands are published to.
func (Topics) Command(node, component string) string {
	return fmt.Sprintf("%s/command/%s/%s", TopicPrefix, node, component)
}

// ComponentState returns the retained state topic of a component.
func (Topics) ComponentState(node, component string) string {
	return fmt.Sprintf("%s/state/%s/%s", TopicPrefix, node, component)
}

// ScriptRun returns the topic that requests a run of script.
func (Topics) ScriptRun(node, script string) string {
	return fmt.Sprintf("%s/script/%s/%s/run", TopicPrefix, node, script)
}

// AllScriptRuns returns the wildcard matching every run request for node.
func (Topics) AllScriptRuns(node string) string {
	return fmt.Sprintf("%s/script/%s/+/run", TopicPrefix, node)
}

// ScriptResult returns the topic run results are published to.
func (Topics) ScriptResult(node string) string {
	return fmt.Sprintf("%s/script/%s/result", TopicPrefix, node)
}

// SystemStatus returns the retained status topic of node.
func (Topics) SystemStatus(node string) string {
	return fmt.Sprintf("%s/system/%s/status", TopicPrefix, node)
}

// AllCommands returns the wildcard matching every command for node.
func (Topics) AllCommands(node string) string {
	return fmt.Sprintf("%s/command/%s/+", TopicPrefix, node)
}

// ParseScriptRun extracts node and script from a run request topic.
func ParseScriptRun(topic string) (node, script string, ok bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 5 || parts[0] != TopicPrefix || parts[1] != "script" || parts[4] != "run" {
		return "", "", false
	}
	if parts[2] == "" || parts[3] == "" {
		return "", "", false
	}
	return parts[2], parts[3], true
}

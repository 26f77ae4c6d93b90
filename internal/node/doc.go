// Package node loads RoboEyes node documents and compiles them into
// component and script registries.
//
// # Document
//
//	robo_eyes:
//	  - id: eyes1
//	    driver: mqtt
//	    frame_rate: 30
//	script:
//	  - id: greet
//	    parameters:
//	      who_mood: string
//	    then:
//	      - robo_eyes.set_mood:
//	          component: eyes1
//	          mood: !lambda who_mood
//	      - robo_eyes.laugh:
//	          component: eyes1
//
// Scalars tagged !lambda are expressions over the script's parameters.
//
// # Pipeline
//
//	bytes ──▶ Parse ──▶ Document ──▶ Compiler.Compile ──▶ Program
//	          (YAML,                 (drivers, components,   (roboeyes.Registry,
//	           JSON Schema shape)     actions.Catalogue)      automation.Registry)
//
// Parse rejects documents that do not match the embedded JSON Schema. Field
// checks of individual action entries belong to the action catalogue and
// run during Compile, where a rejected entry is reported and left out
// without stopping the rest of the document.
package node

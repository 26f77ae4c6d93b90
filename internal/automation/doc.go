// Package automation runs compiled RoboEyes scripts on the host.
//
// A Script is an ordered list of actions compiled from the node document.
// The Engine owns the one loop that touches components: it ticks every
// component's frame and plays queued runs between frames, so a display is
// never updated while an action is half applied.
//
//	         Run(ctx, "greet", args)
//	                  │
//	                  ▼
//	┌────────────────────────────────────────────┐
//	│              Engine.Loop                   │
//	│  ┌───────────┐     ┌────────────────────┐  │
//	│  │  ticker   │────▶│ Component.Loop()   │  │
//	│  └───────────┘     └────────────────────┘  │
//	│  ┌───────────┐     ┌────────────────────┐  │
//	│  │ job queue │────▶│ Action.Play(args)  │  │
//	│  └───────────┘     └────────────────────┘  │
//	└──────────┬──────────────────┬──────────────┘
//	           ▼                  ▼
//	     Repository          MetricsWriter
//	  (script_executions)   (InfluxDB points)
//
// # Usage
//
//	engine := automation.NewEngine(scripts, components, automation.NewSQLiteRepository(db.DB), influx, log, opts)
//	go engine.Loop(ctx)
//
//	exec, err := engine.Run(ctx, "greet", automation.TriggerManual, "cli", map[string]any{"level": 3})
package automation

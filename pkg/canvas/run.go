package canvas

import (
	"context"
	"encoding/json"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/shared"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/sketchscript"
)

// startRun starts interpreting a program for this client. A run already in
// progress is cancelled first; each run gets a fresh interpreter, so no state
// leaks between runs.
func (c *Client) startRun(program string) {
	maxSizeKB := configuration.GetInt("Interpreter", "max_program_size_kb", 64)
	if len(program) > maxSizeKB*1024 {
		c.SendMessage(shared.Message{
			Type:    shared.MessageTypeError,
			Content: "Program too large",
		})
		return
	}

	c.stopRun()

	maxRunTime := configuration.GetDuration("Interpreter", "max_run_time", 0)
	ctx := context.Background()
	var cancel context.CancelFunc
	if maxRunTime > 0 {
		ctx, cancel = context.WithTimeout(ctx, maxRunTime)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	c.runMu.Lock()
	c.cancelRun = cancel
	c.runMu.Unlock()

	interp := sketchscript.NewSketchScript()
	interp.SetSessionID(c.sessionID)
	interp.MaxLoopIterations = configuration.GetInt("Interpreter", "max_loop_iterations", 1000000)
	interp.MaxCallDepth = configuration.GetInt("Interpreter", "max_call_depth", 256)

	output := make(chan shared.Message, getMaxChannelBuffer())
	interp.SetOutputChannel(output)

	// Forward interpreter messages to the websocket until the run closes the
	// channel.
	go func() {
		for msg := range output {
			jsonMsg, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			c.Send(jsonMsg)
		}
	}()

	go func() {
		defer cancel()
		defer close(output)

		// The frontend wipes the canvas before new primitives arrive.
		c.SendMessage(shared.Message{Type: shared.MessageTypeClear})
		c.SendMessage(shared.Message{
			Type:     shared.MessageTypeRunState,
			RunState: "running",
		})

		err := interp.RunContext(ctx, program)
		switch {
		case err == nil:
			interp.SendCursor()
			c.SendMessage(shared.Message{
				Type:     shared.MessageTypeRunState,
				RunState: "done",
			})
		case ctx.Err() != nil:
			logger.Info(logger.AreaCanvas, "Run cancelled for session %s", c.sessionID)
			c.SendMessage(shared.Message{
				Type:     shared.MessageTypeRunState,
				RunState: "stopped",
			})
		default:
			interp.SendError(err)
			c.SendMessage(shared.Message{
				Type:     shared.MessageTypeRunState,
				RunState: "error",
			})
		}
	}()
}

// stopRun cancels the run in progress, if any.
func (c *Client) stopRun() {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if c.cancelRun != nil {
		c.cancelRun()
		c.cancelRun = nil
	}
}

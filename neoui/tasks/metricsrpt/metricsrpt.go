// Package metricsrpt prints the task metrics report on the console.
package metricsrpt

import (
	"neo/neoui/kernel"
	"neo/neoui/metrics"
	"neo/neoui/msg"
)

var Info = kernel.Info{
	Name:           metrics.MakeName("Metrics"),
	RunEveryUS:     5_000_000,
	TimeBudgetUS:   2_000_000,
	MemBudgetBytes: 500,
}

// Task writes and resets the metrics of every slot that ran since the
// previous report. A nil info uses Info.
type Task struct {
	info *kernel.Info
}

// Every returns a report task with a different period.
func Every(us uint32) Task {
	info := Info
	info.RunEveryUS = us
	return Task{info: &info}
}

func (t Task) Info() *kernel.Info {
	if t.info != nil {
		return t.info
	}
	return &Info
}

func (Task) Run(ctx *kernel.Context) {
	con := ctx.BSP.Console()
	if con == nil {
		return
	}
	if err := ctx.Metrics.WriteReport(con); err != nil {
		ctx.Fail(msg.ErrUnknown, msg.KindNone)
	}
}

// Package progress renders terminal progress for long operations.
//
// Whether anything is drawn is decided by the caller that owns the
// terminal: it attaches a writer to the context with Open, and code
// deep in an operation reports through Count without knowing if
// anyone is watching. Without a writer every call is a no-op.
package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	pb "github.com/schollz/progressbar/v3"
)

type sink struct {
	w io.Writer
}

type sinkKey struct{}

// Open attaches w to the context as the progress display.
func Open(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink{w})
}

type Progress struct {
	bar   *pb.ProgressBar
	label string
}

func (p *Progress) Add(cnt int64) {
	if p.bar == nil {
		return
	}

	p.bar.Add64(cnt)
}

func (p *Progress) Tick() {
	p.Add(1)
}

func (p *Progress) On(step string) {
	if p.bar == nil {
		return
	}

	p.bar.Describe(p.label + ": " + step)
}

func (p *Progress) Close() {
	if p.bar == nil {
		return
	}

	p.bar.Close()
}

// Count starts a bar over total items. The zero Progress comes back
// when the context carries no display.
func Count(ctx context.Context, total int64, label string) *Progress {
	h := ctx.Value(sinkKey{})
	if h == nil {
		return &Progress{}
	}

	out := h.(sink)

	bar := pb.NewOptions64(
		total,
		pb.OptionSetDescription(label),
		pb.OptionSetWriter(out.w),
		pb.OptionSetWidth(20),
		pb.OptionThrottle(65*time.Millisecond),
		pb.OptionShowCount(),
		pb.OptionShowIts(),
		pb.OptionSetTheme(
			pb.Theme{Saucer: "=", SaucerPadding: " ", BarStart: "[", BarEnd: "]"},
		),
		pb.OptionOnCompletion(func() {
			fmt.Fprint(out.w, "\n")
		}),
		pb.OptionFullWidth(),
	)
	bar.RenderBlank()

	return &Progress{label: label, bar: bar}
}

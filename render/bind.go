package render

import (
	"github.com/GhostKellz/ripple/host"
	"github.com/GhostKellz/ripple/reactive"
)

// TextBinding keeps one host text node in sync with a signal.
type TextBinding struct {
	runner *reactive.EffectRunner
}

// BindText creates an effect that pushes the signal's value into the node
// through set_text: once immediately, then once per flush after any write.
// The node is typically a dynamic slot from a MountResult.
func BindText(rt *reactive.Runtime, node host.NodeID, sig reactive.Readable[string]) (*TextBinding, error) {
	runner, err := reactive.Effect(rt, func() error {
		b := host.Active()
		b.SetText(b.Ctx, node, sig.Value())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &TextBinding{runner: runner}, nil
}

func (b *TextBinding) Dispose() {
	b.runner.Dispose()
}

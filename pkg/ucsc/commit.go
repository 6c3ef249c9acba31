package ucsc

import (
	"context"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

// AddMO stages an MO for creation.  With modifyPresent, an object that
// already exists at the DN is updated instead of the commit failing.
// Staging an MO whose DN is already staged replaces the earlier entry.
func (h *Handle) AddMO(m *mo.MO, modifyPresent bool) {
	status := mo.StatusCreated
	if modifyPresent {
		status = mo.StatusCreated + "," + mo.StatusModified
	}
	h.stage(m, status)
}

// SetMO stages property changes to an existing MO.
func (h *Handle) SetMO(m *mo.MO) {
	h.stage(m, mo.StatusModified)
}

// RemoveMO stages an MO for deletion.
func (h *Handle) RemoveMO(m *mo.MO) {
	h.stage(m, mo.StatusDeleted)
}

func (h *Handle) stage(m *mo.MO, status string) {
	m.Status = status
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, staged := range h.staged {
		if staged.DN == m.DN {
			h.staged[i] = m
			return
		}
	}
	h.staged = append(h.staged, m)
}

// Staged returns how many MOs are waiting for Commit.
func (h *Handle) Staged() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.staged)
}

// DiscardStaged drops everything staged without sending it.
func (h *Handle) DiscardStaged() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.staged = nil
}

// Commit sends every staged change in one configConfMos exchange and returns
// the endpoint's view of the affected MOs.  The staging buffer is cleared
// whether or not the commit succeeds; a failed commit applied nothing, so
// there is nothing worth retrying verbatim.  Committing with nothing staged
// is a no-op.
func (h *Handle) Commit(ctx context.Context) ([]*mo.MO, error) {
	h.mu.Lock()
	staged := h.staged
	h.staged = nil
	h.mu.Unlock()
	if len(staged) == 0 {
		return nil, nil
	}

	pairs := make([]inPair, 0, len(staged))
	for _, m := range staged {
		pairs = append(pairs, inPair{Key: m.DN, MO: m})
	}

	var out []*mo.MO
	err := h.withSession(ctx, func(cookie string) error {
		var resp configConfMosResp
		if err := h.post(ctx, "configConfMos", &configConfMosReq{
			Cookie:    cookie,
			InConfigs: inConfigs{Pairs: pairs},
		}, &resp); err != nil {
			return err
		}
		out = out[:0]
		for _, pair := range resp.OutConfigs.Pairs {
			out = append(out, pair.MOs...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

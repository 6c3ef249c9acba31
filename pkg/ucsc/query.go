package ucsc

import (
	"context"
	"fmt"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

// QueryDN resolves a single MO by distinguished name.  A missing object is
// not an error: the return is (nil, nil), mirroring the endpoint's behavior
// of answering with an empty outConfig.
func (h *Handle) QueryDN(ctx context.Context, dn string) (*mo.MO, error) {
	if dn == "" {
		return nil, fmt.Errorf("QueryDN: empty dn")
	}
	var found *mo.MO
	err := h.withSession(ctx, func(cookie string) error {
		var resp configResolveDnResp
		err := h.post(ctx, "configResolveDn", &configResolveDnReq{
			Cookie: cookie,
			DN:     dn,
		}, &resp)
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}
		if len(resp.OutConfig.MOs) > 0 {
			found = resp.OutConfig.MOs[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// QueryClassID resolves every MO of the given class visible to the session.
func (h *Handle) QueryClassID(ctx context.Context, classID string) ([]*mo.MO, error) {
	if classID == "" {
		return nil, fmt.Errorf("QueryClassID: empty classId")
	}
	var found []*mo.MO
	err := h.withSession(ctx, func(cookie string) error {
		var resp configResolveClassResp
		if err := h.post(ctx, "configResolveClass", &configResolveClassReq{
			Cookie:  cookie,
			ClassID: classID,
		}, &resp); err != nil {
			return err
		}
		found = resp.OutConfigs.MOs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// QueryChildren resolves the children of parentDN, optionally narrowed to a
// single class.
func (h *Handle) QueryChildren(ctx context.Context, parentDN, classID string) ([]*mo.MO, error) {
	if parentDN == "" {
		return nil, fmt.Errorf("QueryChildren: empty parent dn")
	}
	var found []*mo.MO
	err := h.withSession(ctx, func(cookie string) error {
		var resp configResolveChildrenResp
		err := h.post(ctx, "configResolveChildren", &configResolveChildrenReq{
			Cookie:  cookie,
			ClassID: classID,
			InDN:    parentDN,
		}, &resp)
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}
		found = resp.OutConfigs.MOs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

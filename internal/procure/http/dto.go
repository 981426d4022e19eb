package http

import (
	"github.com/upvn/procure/internal/procure/domain"
	"github.com/upvn/procure/pkg/procsdk"
)

func toUserInfo(u domain.User) procsdk.UserInfo {
	return procsdk.UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Role:        string(u.Role),
		Verified:    u.Verified,
		CategoryIDs: u.CategoryIDs,
		CreatedAt:   u.CreatedAt,
	}
}

func toProjectInfo(p domain.Project) procsdk.ProjectInfo {
	return procsdk.ProjectInfo{
		ID:                     p.ID,
		Title:                  p.Title,
		Description:            p.Description,
		Status:                 string(p.Status),
		CreatedBy:              p.CreatedBy,
		CreatedAt:              p.CreatedAt,
		ClosingTime:            p.ClosingTime,
		Currency:               p.Currency,
		Attachments:            p.Attachments,
		RequiresAuditorOpening: p.RequiresAuditorOpening,
		OpenedBy:               p.OpenedBy,
		OpenedAt:               p.OpenedAt,
	}
}

func toBidInfo(b domain.Bid) procsdk.BidInfo {
	return procsdk.BidInfo{
		ID:          b.ID,
		ProjectID:   b.ProjectID,
		SupplierID:  b.SupplierID,
		Amount:      b.Amount.String(),
		SubmittedAt: b.SubmittedAt,
		Attachments: b.Attachments,
	}
}

func toCategoryInfo(c domain.BusinessCategory) procsdk.CategoryInfo {
	return procsdk.CategoryInfo{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func toOpeningRecordResponse(rec domain.OpeningRecord) procsdk.OpeningRecordResponse {
	entries := make([]procsdk.OpeningEntryInfo, len(rec.Entries))
	for i, e := range rec.Entries {
		info := procsdk.OpeningEntryInfo{
			SupplierID:  e.SupplierID,
			DisplayName: e.DisplayName,
			HasBid:      e.HasBid,
			BidTime:     e.BidTime,
			Attachments: e.Attachments,
		}
		if e.Amount != nil {
			amount := e.Amount.String()
			info.Amount = &amount
		}
		entries[i] = info
	}
	return procsdk.OpeningRecordResponse{
		ProjectID:   rec.ProjectID,
		Title:       rec.Title,
		Description: rec.Description,
		Currency:    rec.Currency,
		ClosingTime: rec.ClosingTime,
		OpenerName:  rec.OpenerName,
		OpenedAt:    rec.OpenedAt,
		Entries:     entries,
	}
}

package http

import "vision/internal/calendar"

type importReq struct {
	CalendarID string `json:"calendar_id" binding:"max=200"`
	Days       int    `json:"days"        binding:"omitempty,min=1,max=90"`
}

func (r importReq) toInput() calendar.ImportInput {
	return calendar.ImportInput{CalendarID: r.CalendarID, Days: r.Days}
}

type importResp struct {
	Created []string `json:"created"`
	Existed []string `json:"existed"`
	Skipped int      `json:"skipped"`
}

func (h *handler) newImportResp(out calendar.ImportOutput) importResp {
	resp := importResp{Created: out.Created, Existed: out.Existed, Skipped: out.Skipped}
	if resp.Created == nil {
		resp.Created = []string{}
	}
	if resp.Existed == nil {
		resp.Existed = []string{}
	}
	return resp
}

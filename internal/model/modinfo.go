package model

import "sort"

// CMInfo is the cached view of one course module together with the
// display name of the instance it wraps.
type CMInfo struct {
	ID         uint   `json:"id"`
	Course     uint   `json:"course"`
	ModName    string `json:"modname"`
	Instance   uint   `json:"instance"`
	Name       string `json:"name"`
	Section    uint   `json:"section"`
	SectionNum int    `json:"sectionnum"`
	GroupMode  int    `json:"groupmode"`
	GroupingID uint   `json:"groupingid"`
	Visible    bool   `json:"visible"`
}

// ModInfo holds every course module of a course keyed by module id.
type ModInfo struct {
	CourseID uint             `json:"courseid"`
	CMs      map[uint]*CMInfo `json:"cms"`
}

// Instances returns the modules of the given type in course order.
func (m *ModInfo) Instances(modName string) []*CMInfo {
	var out []*CMInfo
	for _, cm := range m.CMs {
		if cm.ModName == modName {
			out = append(out, cm)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SectionNum != out[j].SectionNum {
			return out[i].SectionNum < out[j].SectionNum
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Package plugin defines the callbacks a host course platform invokes on
// an activity module.
package plugin

import (
	"adaptivequiz/internal/model"
	"context"
	"io"
)

// Feature names a capability the host may ask a module about.
type Feature string

const (
	FeatureGroups                  Feature = "groups"
	FeatureGroupings               Feature = "groupings"
	FeatureGroupMembersOnly        Feature = "groupmembersonly"
	FeatureModIntro                Feature = "mod_intro"
	FeatureBackupMoodle2           Feature = "backup_moodle2"
	FeatureShowDescription         Feature = "showdescription"
	FeatureControlsGradeVisibility Feature = "controlsgradevisbility"
	FeatureCompletionTracksViews   Feature = "completion_tracks_views"
	FeatureGradeHasGrade           Feature = "grade_has_grade"
	FeatureGradeOutcomes           Feature = "outcomes"
)

// NavigationNode is a node of the host's navigation tree.
type NavigationNode struct {
	Key      string            `json:"key"`
	Text     string            `json:"text"`
	URL      string            `json:"url,omitempty"`
	Children []*NavigationNode `json:"children,omitempty"`
}

// Add appends a child node and returns it.
func (n *NavigationNode) Add(key, text, url string) *NavigationNode {
	child := &NavigationNode{Key: key, Text: text, URL: url}
	n.Children = append(n.Children, child)
	return child
}

// ActivityModule is the contract between the host and an activity type.
type ActivityModule interface {
	// Supports returns nil when the module has no opinion on a feature.
	Supports(feature Feature) *bool

	AddInstance(ctx context.Context, q *model.AdaptiveQuiz) (uint, error)
	UpdateInstance(ctx context.Context, q *model.AdaptiveQuiz) (bool, error)
	DeleteInstance(ctx context.Context, id uint) (bool, error)

	UserOutline(ctx context.Context, course *model.Course, user *model.User, cm *model.CMInfo, q *model.AdaptiveQuiz) *model.UserOutline
	UserComplete(ctx context.Context, w io.Writer, course *model.Course, user *model.User, cm *model.CMInfo, q *model.AdaptiveQuiz) error
	PrintRecentActivity(ctx context.Context, w io.Writer, course *model.Course, viewFullNames bool, timestart int64) bool

	Cron(ctx context.Context) bool
	ExtraCapabilities() []string

	ExtendNavigation(node *NavigationNode, course *model.Course, cm *model.CMInfo)
	ExtendSettingsNavigation(settings *NavigationNode, node *NavigationNode)
}

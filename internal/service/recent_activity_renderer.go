package service

import (
	"adaptivequiz/internal/lang"
	"adaptivequiz/internal/model"
	"adaptivequiz/pkg/htmlwriter"
	"io"
	"strings"
)

// RecentActivityRenderer formats activity summaries for recent
// activity reports.
type RecentActivityRenderer struct {
	Output  *OutputHelper
	Strings *lang.Strings
}

func NewRecentActivityRenderer(output *OutputHelper, strs *lang.Strings) *RecentActivityRenderer {
	return &RecentActivityRenderer{Output: output, Strings: strs}
}

// Render returns the markup for one summary. modNames maps activity
// types to display names and is only consulted when detail is set.
func (r *RecentActivityRenderer) Render(a *model.ActivitySummary, courseID uint, detail bool, modNames map[string]string, viewFullNames bool) string {
	var content strings.Builder
	if detail {
		modName := modNames[a.Type]
		content.WriteString(htmlwriter.StartTag("div", htmlwriter.A("class", "title")))
		content.WriteString(htmlwriter.EmptyTag("img", htmlwriter.A(
			"src", r.Output.IconURL(a.Type),
			"class", "icon",
			"alt", modName,
		)))
		content.WriteString(htmlwriter.Link(r.Output.ModuleURL(a.CMID), a.Name, htmlwriter.A("class", "icon", "alt", modName)))
		content.WriteString(htmlwriter.EndTag("div"))
	}

	state := htmlwriter.Escape(r.Strings.Get("recentattemptstate")) + "&nbsp;" + htmlwriter.Escape(a.Content.AttemptState)
	content.WriteString(htmlwriter.Tag("div", state, htmlwriter.A("class", "attemptstate")))

	attempted := htmlwriter.Escape(r.Strings.Get("recentactquestionsattempted", a.Content.QuestionsAttempted))
	content.WriteString(htmlwriter.Tag("div", attempted, htmlwriter.A("class", "questionsattempted")))

	content.WriteString(htmlwriter.StartTag("div", htmlwriter.A("class", "user")))
	content.WriteString(htmlwriter.Link(r.Output.ProfileURL(a.User.ID, courseID), r.Output.FullName(a.User, viewFullNames), nil))
	content.WriteString("&nbsp;" + htmlwriter.Escape(r.Output.UserDate(a.Timestamp)))
	content.WriteString(htmlwriter.EndTag("div"))

	cols := htmlwriter.Tag("td", r.Output.UserPicture(a.User, courseID), htmlwriter.A("class", "userpicture", "valign", "top")) +
		htmlwriter.Tag("td", content.String(), nil)

	var out strings.Builder
	out.WriteString(htmlwriter.StartTag("table", htmlwriter.A(
		"border", "0",
		"cellpadding", "3",
		"cellspacing", "0",
		"class", "adaptivequiz-recent",
	)))
	out.WriteString(htmlwriter.Tag("tr", cols, nil))
	out.WriteString(htmlwriter.EndTag("table"))
	return out.String()
}

// Print writes the markup Render returns.
func (r *RecentActivityRenderer) Print(w io.Writer, a *model.ActivitySummary, courseID uint, detail bool, modNames map[string]string, viewFullNames bool) error {
	_, err := io.WriteString(w, r.Render(a, courseID, detail, modNames, viewFullNames))
	return err
}

package service

import (
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/lang"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/util"
	"adaptivequiz/pkg/htmlwriter"
	"fmt"
	"strings"
	"time"
)

// OutputHelper formats users, dates and links for the site the module
// is installed on.
type OutputHelper struct {
	Site    config.SiteConfig
	Strings *lang.Strings
}

func NewOutputHelper(site config.SiteConfig, strs *lang.Strings) *OutputHelper {
	return &OutputHelper{Site: site, Strings: strs}
}

func (o *OutputHelper) ModuleURL(cmID uint) string {
	return fmt.Sprintf("%s/mod/%s/view.php?id=%d", o.Site.WWWRoot, model.ModuleName, cmID)
}

func (o *OutputHelper) ProfileURL(userID, courseID uint) string {
	return fmt.Sprintf("%s/user/view.php?id=%d&course=%d", o.Site.WWWRoot, userID, courseID)
}

func (o *OutputHelper) CourseURL(courseID uint) string {
	return fmt.Sprintf("%s/course/view.php?id=%d", o.Site.WWWRoot, courseID)
}

// IconURL returns the theme icon of a component.
func (o *OutputHelper) IconURL(component string) string {
	return fmt.Sprintf("%s/theme/image.php/%s/%s/1/icon", o.Site.WWWRoot, o.Site.Theme, component)
}

// FullName formats a user's name. override selects the alternative
// format used for viewers allowed to see full names.
func (o *OutputHelper) FullName(u model.ActivityUser, override bool) string {
	format := o.Site.FullNameDisplay
	if override && o.Site.AlternativeFullNameFormat != "" {
		format = o.Site.AlternativeFullNameFormat
	}
	name := strings.TrimSpace(strings.NewReplacer(
		"firstname", u.FirstName,
		"lastname", u.LastName,
	).Replace(format))
	if name == "" {
		name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return name
}

// UserDate formats a unix timestamp in the site timezone.
func (o *OutputHelper) UserDate(ts int64) string {
	return time.Unix(ts, 0).In(o.Site.Location()).Format(util.DayDateTimeFormat)
}

// UserPicture returns the user's picture linked to their course profile.
func (o *OutputHelper) UserPicture(u model.ActivityUser, courseID uint) string {
	src := fmt.Sprintf("%s/theme/image.php/%s/core/1/u/f2", o.Site.WWWRoot, o.Site.Theme)
	if u.Picture != 0 {
		src = fmt.Sprintf("%s/pluginfile.php/%d/user/icon/%s/f2", o.Site.WWWRoot, u.Picture, o.Site.Theme)
	}
	alt := u.ImageAlt
	if alt == "" {
		alt = o.Strings.Get("pictureof", o.FullName(u, false))
	}

	img := htmlwriter.EmptyTag("img", htmlwriter.A(
		"src", src,
		"alt", alt,
		"title", alt,
		"class", "userpicture",
		"width", "35",
		"height", "35",
	))
	return htmlwriter.Tag("a", img, htmlwriter.A("href", o.ProfileURL(u.ID, courseID)))
}

package pages

import (
	"time"

	"github.com/expertgati/movers-web/internal/blog"
	"github.com/expertgati/movers-web/internal/lead"
	"github.com/expertgati/movers-web/internal/seo"
	"github.com/expertgati/movers-web/internal/team"
)

// NavItem is one link of the main menu.
type NavItem struct {
	Label string
	Path  string
}

var nav = []NavItem{
	{"Home", "/"},
	{"Our Company", "/ourcompany/"},
	{"Rates", "/rates/"},
	{"FAQs", "/faqs/"},
	{"Our Team", "/teams/"},
	{"Blog", "/blog/"},
	{"Contact", "/contact/"},
}

// View is the data handed to every template.
type View struct {
	Meta   seo.Resolved
	Site   seo.Brand
	Nav    []NavItem
	Path   string
	Notice *Notice
	Year   int

	// Extra JSON-LD documents emitted after Meta.Schema.
	ExtraSchemas []string

	Errors   *lead.ValidationError
	Contact  lead.ContactForm
	Moving   lead.MovingRequestForm
	Services []string
	MinDate  string

	Posts   []blog.Post
	Article *blog.Article
	Members []team.Member

	Status  int
	Message string
}

func (h *Handler) newView(meta seo.Resolved, path string) *View {
	return &View{
		Meta:     meta,
		Site:     h.brand,
		Nav:      nav,
		Path:     path,
		Year:     time.Now().Year(),
		Services: lead.ServiceChoices,
		MinDate:  time.Now().Format(time.DateOnly),
	}
}

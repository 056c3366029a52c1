package portfolio

import "github.com/gabrielmiguelok/livefolio/internal/site/components"

// Section ids, in document order.
const (
	SectionAbout    = "about"
	SectionProjects = "projects"
	SectionSkills   = "skills"
	SectionContact  = "contact"
)

// Sections lists every revealable section in document order.
var Sections = []string{SectionAbout, SectionProjects, SectionSkills, SectionContact}

// DefaultLinks is the navigation bar.
var DefaultLinks = []NavLink{
	{Label: "About", Href: "#" + SectionAbout},
	{Label: "Projects", Href: "#" + SectionProjects},
	{Label: "Skills", Href: "#" + SectionSkills},
	{Label: "Contact", Href: "#" + SectionContact},
}

// Intro is the copy of the introduction section.
type Intro struct {
	Greeting string
	Lead     string
}

// DefaultIntro is used when Options.Intro is empty.
var DefaultIntro = Intro{
	Greeting: "Hi, I'm",
	Lead:     "I turn raw data into dashboards and models, and build the web apps that put them in front of people.",
}

// DefaultSkills is used when Options.Skills is empty.
var DefaultSkills = []components.SkillGroup{
	{Icon: "📊", Title: "Data & Analytics", Items: []string{"Python", "SQL", "Pandas", "Power BI", "Tableau", "Excel"}},
	{Icon: "🤖", Title: "Machine Learning", Items: []string{"scikit-learn", "OpenCV", "Feature engineering", "Model evaluation"}},
	{Icon: "💻", Title: "Development", Items: []string{"Go", "JavaScript", "HTML", "CSS", "REST APIs"}},
	{Icon: "🛠️", Title: "Tools", Items: []string{"Git", "Docker", "Linux", "Jupyter"}},
}

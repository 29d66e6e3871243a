// Package content serves the read-only portfolio data shown on the site.
package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

// AllCategories selects every item when filtering.
const AllCategories = "all"

type Social struct {
	GitHub    string `yaml:"github" json:"github"`
	LinkedIn  string `yaml:"linkedin" json:"linkedin,omitempty"`
	Instagram string `yaml:"instagram" json:"instagram,omitempty"`
	Portfolio string `yaml:"portfolio" json:"portfolio"`
	Email     string `yaml:"email" json:"email"`
	Phone     string `yaml:"phone" json:"phone"`
}

type PersonalInfo struct {
	Name         string `yaml:"name" json:"name"`
	Title        string `yaml:"title" json:"title"`
	Tagline      string `yaml:"tagline" json:"tagline"`
	Bio          string `yaml:"bio" json:"bio"`
	Location     string `yaml:"location" json:"location"`
	Email        string `yaml:"email" json:"email"`
	Phone        string `yaml:"phone" json:"phone"`
	Portfolio    string `yaml:"portfolio" json:"portfolio"`
	ProfileImage string `yaml:"profileImage" json:"profileImage"`
	Social       Social `yaml:"social" json:"social"`
}

type Project struct {
	ID          int      `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	Category    string   `yaml:"category" json:"category"`
	Status      string   `yaml:"status" json:"status"` // completed, in-progress, planned
	Year        string   `yaml:"year" json:"year"`
	Icon        string   `yaml:"icon" json:"icon"`
	GitHubRepo  string   `yaml:"githubRepo" json:"githubRepo,omitempty"`
}

type Skill struct {
	Name        string `yaml:"name" json:"name"`
	Proficiency int    `yaml:"proficiency" json:"proficiency"`
	Category    string `yaml:"category" json:"category"`
}

type Experience struct {
	ID          int      `yaml:"id" json:"id"`
	Period      string   `yaml:"period" json:"period"`
	Title       string   `yaml:"title" json:"title"`
	Company     string   `yaml:"company" json:"company"`
	Location    string   `yaml:"location" json:"location"`
	URL         string   `yaml:"url" json:"url,omitempty"`
	Description []string `yaml:"description" json:"description"`
	Type        string   `yaml:"type" json:"type"` // work, internship, education
}

type Certification struct {
	ID     int    `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Issuer string `yaml:"issuer" json:"issuer"`
	Year   string `yaml:"year" json:"year"`
	Type   string `yaml:"type" json:"type"`
}

type Portfolio struct {
	Personal       PersonalInfo    `yaml:"personal" json:"personal"`
	Projects       []Project       `yaml:"projects" json:"projects"`
	Skills         []Skill         `yaml:"skills" json:"skills"`
	Experience     []Experience    `yaml:"experience" json:"experience"`
	Certifications []Certification `yaml:"certifications" json:"certifications"`
}

// CategoryCount is one entry of a filter bar.
type CategoryCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type Store struct {
	portfolio Portfolio
}

// Default returns the store backed by the embedded portfolio file.
func Default() (*Store, error) {
	return Parse(defaultPortfolio)
}

func Parse(data []byte) (*Store, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}
	return &Store{portfolio: p}, nil
}

func (s *Store) Portfolio() Portfolio {
	return s.portfolio
}

// Projects returns projects in the given category, or all of them for "" and "all".
func (s *Store) Projects(category string) []Project {
	return filter(s.portfolio.Projects, category, func(p Project) string { return p.Category })
}

func (s *Store) Skills(category string) []Skill {
	return filter(s.portfolio.Skills, category, func(sk Skill) string { return sk.Category })
}

// ProjectCategories lists project categories in first-seen order, led by "all".
func (s *Store) ProjectCategories() []CategoryCount {
	return categories(s.portfolio.Projects, func(p Project) string { return p.Category })
}

func (s *Store) SkillCategories() []CategoryCount {
	return categories(s.portfolio.Skills, func(sk Skill) string { return sk.Category })
}

func filter[T any](items []T, category string, categoryOf func(T) string) []T {
	out := []T{}
	for _, it := range items {
		if category == "" || category == AllCategories || categoryOf(it) == category {
			out = append(out, it)
		}
	}
	return out
}

func categories[T any](items []T, categoryOf func(T) string) []CategoryCount {
	out := []CategoryCount{{ID: AllCategories, Count: len(items)}}
	index := map[string]int{}
	for _, it := range items {
		c := categoryOf(it)
		i, ok := index[c]
		if !ok {
			i = len(out)
			index[c] = i
			out = append(out, CategoryCount{ID: c})
		}
		out[i].Count++
	}
	return out
}

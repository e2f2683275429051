package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultInstructorName is shown in the hero when no instructor is set.
const DefaultInstructorName = "Instructor Name"

type Topic struct {
	Text string `json:"text"`
}

type Partnership struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Logo  string `json:"logo"`
	Icon  string `json:"icon"`
}

type EnrollButton struct {
	Label               string `json:"label"`
	EnrollURL           string `json:"enrollUrl"`
	EnrollHubspotFormID string `json:"enrollHubspotFormId"`
}

type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageAlt    string `json:"imageAlt"`
	ImageType   string `json:"imageType"`
	Type        string `json:"type"`
	SiteName    string `json:"siteName"`
}

// Hero is the fixed section rendered above the layout. It is never part of
// PageLayout and cannot be moved or removed.
type Hero struct {
	TitleColor        string  `json:"titleColor"`
	BackgroundCSS     string  `json:"backgroundCSS"`
	IllustrationImage string  `json:"illustrationImage"`
	BackgroundImage   *string `json:"backgroundImage"`
}

type Video struct {
	YoutubeVideoID string `json:"youtubeVideoId"`
	Thumbnail      string `json:"thumbnail"`
}

type CourseOutline struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// Syllabus is read-only for the editor.
type Syllabus struct {
	Courses []CourseOutline `json:"courses"`
}

// Document is the editable course landing page.
// Its JSON form is also the persisted snapshot and the export payload.
type Document struct {
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Description    string        `json:"description"`
	ReleasedAt     string        `json:"releasedAt"`
	LastEditAt     string        `json:"lastEditAt"`
	PreviewImage   string        `json:"previewImage"`
	CoverImage     string        `json:"coverImage"`
	CurriculumType string        `json:"curriculumType"`
	Levels         []string      `json:"levels"`
	Topics         []Topic       `json:"topics"`
	Partnerships   []Partnership `json:"partnerships"`
	Skills         []Skill       `json:"skills"`
	EnrollButton   EnrollButton  `json:"enrollButton"`
	OG             OpenGraph     `json:"og"`
	Hero           Hero          `json:"hero"`
	Video          Video         `json:"video"`
	PageLayout     []Block       `json:"pageLayout"`
	Syllabus       Syllabus      `json:"syllabus"`
}

// UnmarshalJSON decodes pageLayout entries through DecodeBlock.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	aux := struct {
		*plain
		PageLayout []json.RawMessage `json:"pageLayout"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.PageLayout = nil
	if aux.PageLayout == nil {
		return nil
	}
	d.PageLayout = make([]Block, 0, len(aux.PageLayout))
	for i, raw := range aux.PageLayout {
		b, err := DecodeBlock(raw)
		if err != nil {
			return fmt.Errorf("pageLayout[%d]: %w", i, err)
		}
		d.PageLayout = append(d.PageLayout, b)
	}
	return nil
}

// FindBlock returns the block with the given key.
func (d Document) FindBlock(key string) (Block, bool) {
	if i := d.IndexOf(key); i >= 0 {
		return d.PageLayout[i], true
	}
	return nil, false
}

// IndexOf returns the layout position of key, or -1.
func (d Document) IndexOf(key string) int {
	for i, b := range d.PageLayout {
		if b.ID() == key {
			return i
		}
	}
	return -1
}

// Keys returns the layout keys in render order.
func (d Document) Keys() []string {
	keys := make([]string, len(d.PageLayout))
	for i, b := range d.PageLayout {
		keys[i] = b.ID()
	}
	return keys
}

// InstructorName is the name shown by the hero: the first entry of the first
// instructors block, or DefaultInstructorName. The canvas and the preview must
// both use this.
func (d Document) InstructorName() string {
	for _, b := range d.PageLayout {
		ins, ok := b.(Instructors)
		if !ok {
			continue
		}
		if len(ins.Instructors) > 0 && ins.Instructors[0].Name != "" {
			return ins.Instructors[0].Name
		}
		return DefaultInstructorName
	}
	return DefaultInstructorName
}

// Validate checks that every block is well formed and keys are unique.
func (d Document) Validate() error {
	seen := make(map[string]struct{}, len(d.PageLayout))
	for i, b := range d.PageLayout {
		if err := ValidateBlock(b); err != nil {
			return fmt.Errorf("pageLayout[%d]: %w", i, err)
		}
		if _, dup := seen[b.ID()]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrMalformedBlock, b.ID())
		}
		seen[b.ID()] = struct{}{}
	}
	return nil
}

// ExportFilename is the download name for the export payload.
func (d Document) ExportFilename() string {
	slug := strings.TrimSpace(d.Slug)
	if slug == "" {
		slug = "course"
	}
	return slug + ".json"
}

// ParseDocument decodes a snapshot or export payload and validates it.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	return d, nil
}

package domain

import "encoding/json"

// Kind is the wire tag of a layout block ("component" in the JSON snapshot).
type Kind string

const (
	KindFeatureList  Kind = "feature_list"
	KindTextBlock    Kind = "text_block"
	KindInstructors  Kind = "instructors"
	KindTestimonials Kind = "testimonials"
	KindFAQs         Kind = "faqs"
	KindPromoBanner  Kind = "promo_banner"
	KindSkills       Kind = "skills"
	KindNewsletter   Kind = "newsletter"
)

// Kinds lists every block kind a document may contain.
func Kinds() []Kind {
	return []Kind{
		KindFeatureList,
		KindTextBlock,
		KindInstructors,
		KindTestimonials,
		KindFAQs,
		KindPromoBanner,
		KindSkills,
		KindNewsletter,
	}
}

// Block is one content unit of the page layout.
//
// The set of implementations is closed: only the eight types in this file
// satisfy it. Code that must handle every kind implements Visitor, which
// stops compiling when a kind is added without a matching case.
type Block interface {
	// ID returns the block key. It never changes for the life of the block.
	ID() string
	// Kind returns the block's tag. It is fixed by the Go type.
	Kind() Kind
	Accept(v Visitor)

	withKey(key string) Block
}

// Visitor dispatches over the closed set of block kinds.
type Visitor interface {
	VisitFeatureList(b FeatureList)
	VisitTextBlock(b TextBlock)
	VisitInstructors(b Instructors)
	VisitTestimonials(b Testimonials)
	VisitFAQs(b FAQs)
	VisitPromoBanner(b PromoBanner)
	VisitSkills(b Skills)
	VisitNewsletter(b Newsletter)
}

// Rekey returns a copy of b carrying a new key. The source block is untouched.
func Rekey(b Block, key string) Block {
	return b.withKey(key)
}

// ─────────────────────────────────────────────────────────────
// Block payloads
// ─────────────────────────────────────────────────────────────

type FeatureListItem struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}

type FeatureList struct {
	Key         string            `json:"key"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	ItemStyle   string            `json:"itemStyle,omitempty"` // "card" or "list"
	Features    []FeatureListItem `json:"features"`
}

type TextBlock struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type SocialLinks struct {
	LinkedIn    string `json:"linkedin,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Website     string `json:"website,omitempty"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
	TwitterURL  string `json:"twitterUrl,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
}

type Instructor struct {
	Name          string      `json:"name"`
	JobTitle      string      `json:"jobTitle"`
	Description   string      `json:"description"`
	SocialLinks   SocialLinks `json:"socialLinks"`
	FeaturedImage string      `json:"featuredImage"`
}

type Instructors struct {
	Key         string       `json:"key"`
	Instructors []Instructor `json:"instructors"`
}

type Testimonial struct {
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
	Content  string `json:"content"`
}

type Testimonials struct {
	Key          string        `json:"key"`
	Title        string        `json:"title"`
	Testimonials []Testimonial `json:"testimonials"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQs struct {
	Key  string    `json:"key"`
	FAQs []FAQItem `json:"faqs"`
}

type PromoButton struct {
	URL           string `json:"url"`
	HubspotFormID string `json:"hubspotFormId"`
	Label         string `json:"label"`
	Variant       string `json:"variant"`
}

type PromoBanner struct {
	Key               string      `json:"key"`
	Title             string      `json:"title"`
	Button            PromoButton `json:"button"`
	BackgroundCSS     string      `json:"backgroundCSS"`
	IllustrationImage string      `json:"illustrationImage"`
}

type Skill struct {
	Text string `json:"text"`
}

type Skills struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Skills []Skill `json:"skills"`
}

type Newsletter struct {
	Key           string `json:"key"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	HubspotFormID string `json:"hubspotFormId"`
}

// ── Block implementations ─────────────────────────────────

func (b FeatureList) ID() string { return b.Key }
func (b FeatureList) Kind() Kind { return KindFeatureList }
func (b FeatureList) Accept(v Visitor) { v.VisitFeatureList(b) }
func (b FeatureList) withKey(key string) Block {
	b.Key = key
	return b
}

func (b TextBlock) ID() string { return b.Key }
func (b TextBlock) Kind() Kind { return KindTextBlock }
func (b TextBlock) Accept(v Visitor) { v.VisitTextBlock(b) }
func (b TextBlock) withKey(key string) Block {
	b.Key = key
	return b
}

func (b Instructors) ID() string { return b.Key }
func (b Instructors) Kind() Kind { return KindInstructors }
func (b Instructors) Accept(v Visitor) { v.VisitInstructors(b) }
func (b Instructors) withKey(key string) Block {
	b.Key = key
	return b
}

func (b Testimonials) ID() string { return b.Key }
func (b Testimonials) Kind() Kind { return KindTestimonials }
func (b Testimonials) Accept(v Visitor) { v.VisitTestimonials(b) }
func (b Testimonials) withKey(key string) Block {
	b.Key = key
	return b
}

func (b FAQs) ID() string { return b.Key }
func (b FAQs) Kind() Kind { return KindFAQs }
func (b FAQs) Accept(v Visitor) { v.VisitFAQs(b) }
func (b FAQs) withKey(key string) Block {
	b.Key = key
	return b
}

func (b PromoBanner) ID() string { return b.Key }
func (b PromoBanner) Kind() Kind { return KindPromoBanner }
func (b PromoBanner) Accept(v Visitor) { v.VisitPromoBanner(b) }
func (b PromoBanner) withKey(key string) Block {
	b.Key = key
	return b
}

func (b Skills) ID() string { return b.Key }
func (b Skills) Kind() Kind { return KindSkills }
func (b Skills) Accept(v Visitor) { v.VisitSkills(b) }
func (b Skills) withKey(key string) Block {
	b.Key = key
	return b
}

func (b Newsletter) ID() string { return b.Key }
func (b Newsletter) Kind() Kind { return KindNewsletter }
func (b Newsletter) Accept(v Visitor) { v.VisitNewsletter(b) }
func (b Newsletter) withKey(key string) Block {
	b.Key = key
	return b
}

// ── JSON encoding ─────────────────────────────────────────
// Each payload is written flat with its "component" tag first. The local
// plain type drops the method set so Marshal does not recurse.

func (b FeatureList) MarshalJSON() ([]byte, error) {
	type plain FeatureList
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindFeatureList, plain(b)})
}

func (b TextBlock) MarshalJSON() ([]byte, error) {
	type plain TextBlock
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindTextBlock, plain(b)})
}

func (b Instructors) MarshalJSON() ([]byte, error) {
	type plain Instructors
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindInstructors, plain(b)})
}

func (b Testimonials) MarshalJSON() ([]byte, error) {
	type plain Testimonials
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindTestimonials, plain(b)})
}

func (b FAQs) MarshalJSON() ([]byte, error) {
	type plain FAQs
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindFAQs, plain(b)})
}

func (b PromoBanner) MarshalJSON() ([]byte, error) {
	type plain PromoBanner
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindPromoBanner, plain(b)})
}

func (b Skills) MarshalJSON() ([]byte, error) {
	type plain Skills
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindSkills, plain(b)})
}

func (b Newsletter) MarshalJSON() ([]byte, error) {
	type plain Newsletter
	return json.Marshal(struct {
		Component Kind `json:"component"`
		plain
	}{KindNewsletter, plain(b)})
}

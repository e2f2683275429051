package domain

// BlockSummary is a compact, render-free description of a block used by the
// CLI and agent tools.
type BlockSummary struct {
	Key   string `json:"key"`
	Kind  Kind   `json:"component"`
	Title string `json:"title"`
	Items int    `json:"items"`
}

// Summarize describes b without rendering it.
func Summarize(b Block) BlockSummary {
	s := &summarizer{out: BlockSummary{Key: b.ID(), Kind: b.Kind()}}
	b.Accept(s)
	return s.out
}

type summarizer struct {
	out BlockSummary
}

func (s *summarizer) VisitFeatureList(b FeatureList) {
	s.out.Title, s.out.Items = b.Title, len(b.Features)
}

func (s *summarizer) VisitTextBlock(b TextBlock) {
	s.out.Title = b.Title
}

func (s *summarizer) VisitInstructors(b Instructors) {
	s.out.Items = len(b.Instructors)
	if len(b.Instructors) > 0 {
		s.out.Title = b.Instructors[0].Name
	}
}

func (s *summarizer) VisitTestimonials(b Testimonials) {
	s.out.Title, s.out.Items = b.Title, len(b.Testimonials)
}

func (s *summarizer) VisitFAQs(b FAQs) {
	s.out.Items = len(b.FAQs)
	if len(b.FAQs) > 0 {
		s.out.Title = b.FAQs[0].Question
	}
}

func (s *summarizer) VisitPromoBanner(b PromoBanner) {
	s.out.Title = b.Title
}

func (s *summarizer) VisitSkills(b Skills) {
	s.out.Title, s.out.Items = b.Title, len(b.Skills)
}

func (s *summarizer) VisitNewsletter(b Newsletter) {
	s.out.Title = b.Title
}

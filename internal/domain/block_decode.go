package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// DecodeBlock parses one layout entry, dispatching on its "component" tag.
func DecodeBlock(raw []byte) (Block, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedBlock)
	}
	tag := gjson.GetBytes(raw, "component")
	if !tag.Exists() || tag.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing component tag", ErrMalformedBlock)
	}
	if key := gjson.GetBytes(raw, "key"); key.Type != gjson.String || strings.TrimSpace(key.Str) == "" {
		return nil, fmt.Errorf("%w: missing key", ErrMalformedBlock)
	}

	var (
		b   Block
		err error
	)
	switch Kind(tag.Str) {
	case KindFeatureList:
		b, err = decodeAs[FeatureList](raw)
	case KindTextBlock:
		b, err = decodeAs[TextBlock](raw)
	case KindInstructors:
		b, err = decodeAs[Instructors](raw)
	case KindTestimonials:
		b, err = decodeAs[Testimonials](raw)
	case KindFAQs:
		b, err = decodeAs[FAQs](raw)
	case KindPromoBanner:
		b, err = decodeAs[PromoBanner](raw)
	case KindSkills:
		b, err = decodeAs[Skills](raw)
	case KindNewsletter:
		b, err = decodeAs[Newsletter](raw)
	default:
		return nil, fmt.Errorf("%w: %w %q", ErrMalformedBlock, ErrUnknownKind, tag.Str)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedBlock, tag.Str, err)
	}
	return b, nil
}

func decodeAs[T Block](raw []byte) (Block, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ValidateBlock reports whether b can be placed in a layout.
func ValidateBlock(b Block) error {
	if b == nil {
		return fmt.Errorf("%w: nil block", ErrMalformedBlock)
	}
	if strings.TrimSpace(b.ID()) == "" {
		return fmt.Errorf("%w: %s block has no key", ErrMalformedBlock, b.Kind())
	}
	return nil
}

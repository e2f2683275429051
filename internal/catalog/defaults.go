package catalog

import (
	"time"

	"coursepage/internal/domain"
)

var defaults = map[domain.Kind]func(key string) domain.Block{
	domain.KindFeatureList: func(key string) domain.Block {
		return domain.FeatureList{
			Key:   key,
			Title: "What you'll learn",
			Features: []domain.FeatureListItem{
				{Description: "Learn the fundamentals of the subject"},
				{Description: "Apply concepts through hands-on practice"},
			},
		}
	},
	domain.KindTextBlock: func(key string) domain.Block {
		return domain.TextBlock{
			Key:   key,
			Title: "About this course",
			Body:  "This course will teach you the essential skills and knowledge needed to succeed in this field.",
		}
	},
	domain.KindInstructors: func(key string) domain.Block {
		return domain.Instructors{
			Key: key,
			Instructors: []domain.Instructor{{
				Name:        "Instructor Name",
				JobTitle:    "Expert in Field",
				Description: "Brief instructor bio and background",
				SocialLinks: domain.SocialLinks{LinkedIn: "#", Twitter: "#", Website: "#"},
			}},
		}
	},
	domain.KindTestimonials: func(key string) domain.Block {
		return domain.Testimonials{
			Key:   key,
			Title: "What learners say",
			Testimonials: []domain.Testimonial{{
				Name:     "Student Name",
				JobTitle: "Job Title",
				Content:  "This course was incredibly valuable and well-structured.",
			}},
		}
	},
	domain.KindFAQs: func(key string) domain.Block {
		return domain.FAQs{
			Key: key,
			FAQs: []domain.FAQItem{
				{Question: "How long is this course?", Answer: "The course takes approximately X hours to complete."},
				{Question: "What prerequisites are needed?", Answer: "No prior experience is required."},
			},
		}
	},
	domain.KindPromoBanner: func(key string) domain.Block {
		return domain.PromoBanner{
			Key:   key,
			Title: "Special Offer - Enroll Today!",
			Button: domain.PromoButton{
				URL:     "#",
				Label:   "Enroll Now",
				Variant: "primary",
			},
		}
	},
	domain.KindSkills: func(key string) domain.Block {
		return domain.Skills{
			Key:    key,
			Title:  "Skills you'll gain",
			Skills: []domain.Skill{{Text: "Skill 1"}, {Text: "Skill 2"}, {Text: "Skill 3"}},
		}
	},
	domain.KindNewsletter: func(key string) domain.Block {
		return domain.Newsletter{
			Key:         key,
			Title:       "Stay updated",
			Description: "Get the latest news and updates about our courses",
		}
	},
}

// timestampLayout matches the ISO strings stored in existing snapshots.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NewDocument builds the starter course used when no snapshot exists.
func NewDocument(now time.Time) domain.Document {
	stamp := now.UTC().Format(timestampLayout)
	return domain.Document{
		Title:          "New Course",
		Slug:           "new-course",
		Description:    "Course description here",
		ReleasedAt:     stamp,
		LastEditAt:     stamp,
		CurriculumType: "short_course",
		Levels:         []string{"beginner"},
		Topics:         []domain.Topic{{Text: "Machine Learning"}, {Text: "AI"}},
		Partnerships:   []domain.Partnership{},
		Skills:         []domain.Skill{{Text: "Python Programming"}, {Text: "Data Analysis"}},
		EnrollButton: domain.EnrollButton{
			Label:     "Enroll Now",
			EnrollURL: "#",
		},
		OG: domain.OpenGraph{
			Title:       "New Course",
			Description: "Course description here",
			ImageAlt:    "Course Image",
			ImageType:   "image/png",
			Type:        "website",
			SiteName:    "DeepLearning.AI",
		},
		Hero: domain.Hero{
			TitleColor:    "#ffffff",
			BackgroundCSS: "linear-gradient(318deg, rgba(25,25,182,1) 0%, rgba(38,38,102,1) 100%)",
		},
		PageLayout: []domain.Block{},
		Syllabus: domain.Syllabus{
			Courses: []domain.CourseOutline{{
				Title:   "Course Module 1",
				Slug:    "course-module-1",
				Content: "## Module 1: Introduction\n\nThis is a sample course module.",
			}},
		},
	}
}

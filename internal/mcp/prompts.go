package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("draft_landing_page",
		mcp.WithPromptDescription("Lay out a course landing page from a short course description"),
		mcp.WithArgument("course",
			mcp.ArgumentDescription("Course title and a sentence or two about it"),
			mcp.RequiredArgument(),
		),
	), s.handleDraftPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("review_layout",
		mcp.WithPromptDescription("Review the current layout and suggest missing sections"),
	), s.handleReviewPrompt)
}

func (s *Server) handleDraftPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	course := req.Params.Arguments["course"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Draft a landing page for: %s", course),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Draft the landing page for this course: "%s". Follow these steps:

1. Call list_blocks to see what is already on the page.
2. Add a feature_list block (add_block) with 3-5 learning outcomes in "features".
3. Add a text_block describing who the course is for.
4. Add a skills block listing the skills learners gain.
5. Add a faqs block with at least three questions about duration, prerequisites and certificates.
6. Finish with a promo_banner whose button label invites enrollment.

Use patch_block to fill each block's fields. Use reorder_block if the order needs fixing.`, course),
				},
			},
		},
	}, nil
}

func (s *Server) handleReviewPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Review the course landing page",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: `Read the coursepage://document resource and review the page layout.

Point out blocks with placeholder text still in them, sections a learner would expect but cannot find (instructors, FAQs, skills), and any ordering that reads oddly. Propose concrete patch_block and reorder_block calls; do not apply them.`,
				},
			},
		},
	}, nil
}

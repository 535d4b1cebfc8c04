package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

// TemplateData is everything a lifecycle email can interpolate. Link is empty
// for stages with no call to action.
type TemplateData struct {
	FirstName string
	Title     string
	Link      string
}

type stageTemplate struct {
	subject string
	body    string
}

const layoutHTML = `<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; }
  h1 { color: #333366; }
  h2 { color: #333399; }
  p { color: #333333; }
  a { color: #1a0dab; text-decoration: none; }
  .footer { margin-top: 20px; font-style: italic; }
</style>
</head>
<body>
{{template "body" .}}
<div class="footer">
  <p>Warm regards,</p>
  <p>The Editorial Team</p>
</div>
</body>
</html>`

var stageTemplates = map[string]stageTemplate{
	"confirmation": {
		subject: "Your Story's Journey Begins - Submission Confirmed!",
		body: `{{define "body"}}
<h1>Congratulations{{if .FirstName}}, {{.FirstName}}{{end}} - your story has been received!</h1>
<p>Our team is ready to bring your narrative to life. You can expect regular updates by email as your article moves through each stage.</p>
<h2>Here's What Happens Next</h2>
<p>Once your article is drafted you will have the opportunity to review it before anything goes public. The moment it is ready, you will be the first to know.</p>
{{end}}`,
	},
	"editorial": {
		subject: "Exciting News: Your Article Has Entered the Editorial Stage!",
		body: `{{define "body"}}
<h1>Your article, &ldquo;{{.Title}}&rdquo;, has officially entered the editorial process!</h1>
<p>Our editorial team will review and polish your article, preserving the authenticity of your narrative while enhancing its clarity and impact.</p>
<h2>Stay Tuned</h2>
<p>You'll be the first to know when your article is ready for the next step.</p>
{{end}}`,
	},
	"editorial_update": {
		subject: "Editorial Update: Your Article Is Taking Shape",
		body: `{{define "body"}}
<h1>Work on &ldquo;{{.Title}}&rdquo; is well underway.</h1>
<p>The editorial pass on your article is progressing nicely. We are refining structure and flow while keeping your voice front and center.</p>
<p>Your review copy will be with you shortly.</p>
{{end}}`,
	},
	"review": {
		subject: "Your Story Awaits: Review Your Completed Article Now!",
		body: `{{define "body"}}
<h1>Your article, &ldquo;{{.Title}}&rdquo;, is ready for your review!</h1>
<h2>Review and Approve</h2>
<p>Please review the article at your earliest convenience to give it your stamp of approval.</p>
<a href="{{.Link}}">Review Your Article</a>
<h2>Next Steps</h2>
<p>Once you approve the article, we will proceed with publishing it.</p>
{{end}}`,
	},
	"review_reminder": {
		subject: "A Gentle Reminder: Your Article Is Waiting for You",
		body: `{{define "body"}}
<h1>&ldquo;{{.Title}}&rdquo; is still waiting for your review.</h1>
<p>Whenever you're ready, take a look and let us know it has your approval so we can move toward publication.</p>
<a href="{{.Link}}">Review Your Article</a>
{{end}}`,
	},
	"revision": {
		subject: "Your Revised Article is Ready for Review - Take a Look!",
		body: `{{define "body"}}
<h1>Your revised article is now ready for review!</h1>
<h2>Refined Per Your Feedback</h2>
<p>Following your notes, our team has fine-tuned your article. Please review the revised version; your approval is needed before we move forward with publishing.</p>
<a href="{{.Link}}">Review Your Revised Article</a>
{{end}}`,
	},
	"published": {
		subject: "Your Story is Now Published! Discover Your Article",
		body: `{{define "body"}}
<h1>Your article, &ldquo;{{.Title}}&rdquo;, is now published!</h1>
<h2>Experience Your Published Work</h2>
<p>You can view and share your published article at the link below:</p>
<a href="{{.Link}}">View Your Article</a>
<h2>Share Your Achievement</h2>
<p>Your insights and experiences are now out there to inspire and resonate with readers everywhere. Thank you for entrusting us with your narrative.</p>
{{end}}`,
	},
}

var parsed = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(stageTemplates))
	for stage, st := range stageTemplates {
		t := template.Must(template.New(stage).Parse(layoutHTML))
		template.Must(t.Parse(st.body))
		out[stage] = t
	}
	return out
}()

// Render produces the subject and HTML body for a lifecycle stage. Stage names
// match the scheduler's job kinds.
func Render(stage string, data TemplateData) (subject, html string, err error) {
	t, ok := parsed[stage]
	if !ok {
		return "", "", fmt.Errorf("no email template for stage %q", stage)
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("render %s email: %w", stage, err)
	}

	return stageTemplates[stage].subject, b.String(), nil
}

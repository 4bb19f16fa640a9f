package render

import "html/template"

// accentColors cycle per article so each block stands out. Indexing is
// 1-based position mod 3, so the first article is red, not blue.
var accentColors = [3]string{"#1a73e8", "#d93025", "#0d9488"}

type digestView struct {
	Topic      string
	SourceName string
	SourceURL  string
	Date       string
	Count      int
	Articles   []articleView
}

type articleView struct {
	Index       int
	Color       string
	Title       string
	SummaryHTML template.HTML
	URL         string
}

var digestTmpl = template.Must(template.New("digest").Parse(digestTemplate))

const digestTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; background-color: #f5f5f5; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;">
    <div style="max-width: 700px; margin: 0 auto; padding: 20px;">

        <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 40px 30px; border-radius: 12px; text-align: center; margin-bottom: 30px;">
            <h1 style="margin: 0; font-size: 32px; font-weight: bold;">🎯 Your Daily {{.Topic}} Digest</h1>
            <p style="margin: 10px 0 0 0; font-size: 16px; opacity: 0.9;">Top {{.Count}} Articles from {{.SourceName}}</p>
            <p style="margin: 5px 0 0 0; font-size: 14px; opacity: 0.8;">{{.Date}}</p>
        </div>
{{range .Articles}}
        <div style="background: white; border-left: 5px solid {{.Color}}; padding: 25px; margin-bottom: 30px; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
            <div style="background: {{.Color}}; color: white; padding: 15px 20px; margin: -25px -25px 20px -25px; border-radius: 8px 8px 0 0;">
                <h2 style="margin: 0; font-size: 24px; font-weight: bold; line-height: 1.3;">
                    📌 ARTICLE {{.Index}}: {{.Title}}
                </h2>
            </div>

            <div style="padding: 10px 0;">
                <h3 style="color: #333; font-size: 18px; margin-bottom: 15px; font-weight: 600;">Key Insights:</h3>
                <div style="color: #444; font-size: 15px; line-height: 1.8;">
                    {{.SummaryHTML}}
                </div>
            </div>

            <div style="margin-top: 20px; padding-top: 15px; border-top: 2px solid #eee;">
                <a href="{{.URL}}" style="background: {{.Color}}; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold; display: inline-block; font-size: 14px;">
                    📖 READ FULL ARTICLE →
                </a>
            </div>
        </div>
{{end}}
        <div style="text-align: center; padding: 20px; color: #666; font-size: 13px; border-top: 2px solid #ddd; margin-top: 30px;">
            <p style="margin: 5px 0;">🤖 Powered by AI Article Monitor</p>
            <p style="margin: 5px 0;">Source: <a href="{{.SourceURL}}" style="color: #1a73e8;">{{.SourceName}}</a></p>
        </div>

    </div>
</body>
</html>
`

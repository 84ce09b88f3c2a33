package handler

import "html/template"

// indexTemplateHTML はログイン済みユーザー向けのフォームページ。
// html/templateの文脈依存エスケープにより、表示する値は自動的にエスケープされる。
const indexTemplateHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Submit Form</title>
  </head>
  <body>
    <h2>Hello, {{if .User.GlobalName}}{{.User.GlobalName}}{{else}}{{.User.Username}}{{end}}</h2>
    <p>Logged in as <strong>{{.User.Username}}</strong> (Discord ID: {{.User.ID}})</p>

    {{if .LastSubmission}}
    <h3>Your last submission</h3>
    <ul>
      <li>Submitted at: {{.LastSubmission.SubmittedAt}}</li>
      <li>Favorite color: {{.LastSubmission.FavoriteColor}}</li>
      <li>Message: {{.LastSubmission.Message}}</li>
    </ul>
    {{else}}
    <p>No submissions yet.</p>
    {{end}}

    <h3>New submission</h3>
    <form method="post" action="/submit">
      <p>
        <label for="favoriteColor">Favorite color (max 50 chars)</label><br>
        <input type="text" id="favoriteColor" name="favoriteColor" maxlength="50" required>
      </p>
      <p>
        <label for="message">Message (max 500 chars)</label><br>
        <textarea id="message" name="message" rows="6" cols="60" maxlength="500" required></textarea>
      </p>
      <p><button type="submit">Submit</button></p>
    </form>
    <p>After submitting you will be redirected to <a href="{{.RedirectURL}}">{{.RedirectURL}}</a>.</p>

    <p><a href="/logout">Logout</a></p>
  </body>
</html>
`

// loginPageHTML は未ログインユーザー向けの静的ページ。
const loginPageHTML = `<html>
  <head><meta charset="utf-8"><title>Login</title></head>
  <body>
    <h2>Discord Login Required</h2>
    <p><a href="/auth/discord">Login with Discord</a></p>
  </body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexTemplateHTML))

// indexPageData はindexTemplateに渡すデータ。
type indexPageData struct {
	User           indexPageUser
	LastSubmission *indexPageSubmission
	RedirectURL    string
}

type indexPageUser struct {
	ID         string
	Username   string
	GlobalName string
}

type indexPageSubmission struct {
	SubmittedAt   string
	FavoriteColor string
	Message       string
}

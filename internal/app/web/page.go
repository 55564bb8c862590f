package web

// pageTemplate единственная страница интерфейса. Тёмная тема как в исходном дизайне.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>LocalLearn</title>
<style>
body { background: #0e1117; color: #fafafa; font-family: sans-serif; max-width: 820px; margin: 0 auto; padding: 24px; }
input[type=text], select { width: 100%; padding: 8px; margin: 6px 0 12px; background: #262730; color: #fafafa; border: 1px solid #444; border-radius: 5px; }
button { padding: 8px 16px; margin-right: 8px; background: #ff4b4b; color: #fff; border: 0; border-radius: 5px; cursor: pointer; }
button.secondary { background: #262730; border: 1px solid #444; }
.explanation { white-space: pre-wrap; background: #1a1a1a; border: 1px solid #444; border-radius: 5px; padding: 16px; line-height: 1.6; }
.warning { color: #ffcc00; }
.error { color: #ff6b6b; }
audio { width: 100%; margin-top: 12px; filter: invert(0.9); }
img.preview { max-width: 100%; border: 1px solid #444; margin: 8px 0; }
</style>
</head>
<body>
<h1>LocalLearn</h1>
<p>Science explained in your language, with examples from your daily life.</p>

<form method="post" action="/" enctype="multipart/form-data">
  <label for="language">Language</label>
  <select id="language" name="language">
    {{range .Languages}}<option value="{{.}}"{{if eq . $.Language}} selected{{end}}>{{.}}</option>
    {{end}}
  </select>

  <label for="topic">Topic</label>
  <input type="text" id="topic" name="topic" value="{{.Topic}}" placeholder="e.g. Photosynthesis">
  <input type="hidden" name="current_topic" value="{{.CurrentTopic}}">

  <label for="image">Upload image of textbook page</label>
  <input type="file" id="image" name="image" accept="image/png,image/jpeg">
  {{if .ImageURL}}<img class="preview" src="{{.ImageURL}}" alt="Uploaded textbook image">{{end}}

  <p>
    <button type="submit" name="action" value="explain">Explain</button>
    <button type="submit" name="action" value="simpler" class="secondary"{{if not .CurrentTopic}} disabled{{end}}>Explain simpler</button>
    <button type="submit" name="action" value="image" class="secondary">Read topic from image</button>
    <button type="submit" name="action" value="clear" class="secondary">Clear</button>
  </p>
</form>

{{if .Error}}<p class="error">{{.Error}}</p>{{end}}

{{if .Explanation}}
<h2>{{if .Simplified}}Simple explanation{{else}}Explanation{{end}}: {{.CurrentTopic}}</h2>
<div class="explanation">{{.Explanation}}</div>
{{if .AudioURL}}
<audio controls>
  <source src="{{.AudioURL}}" type="{{.AudioMIME}}">
  Your browser does not support the audio element.
</audio>
{{end}}
{{end}}

{{if .Warning}}<p class="warning">{{.Warning}}</p>{{end}}
</body>
</html>
`

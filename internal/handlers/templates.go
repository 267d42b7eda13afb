package handlers

import "html/template"

const pageTemplates = `
{{define "layout_head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Link Shortener</title>
</head>
<body>
<nav><a href="/">Shorten</a> | <a href="/stats">Statistics</a></nav>
{{end}}

{{define "layout_foot"}}</body>
</html>
{{end}}

{{define "home"}}{{template "layout_head"}}
<h1>Shorten up to {{.MaxURLs}} URLs</h1>
<form id="shorten">
  <div id="rows"></div>
  <button type="button" id="add">Add URL</button>
  <button type="submit">Shorten</button>
</form>
<ul id="errors"></ul>
<ul id="results"></ul>
<script>
const max = {{.MaxURLs}};
const rows = document.getElementById("rows");
function addRow() {
  if (rows.children.length >= max) return;
  const row = document.createElement("div");
  row.innerHTML = '<input name="originalUrl" placeholder="https://example.com" required> ' +
    '<input name="validityDays" value="30" size="4"> days ' +
    '<input name="shortcode" placeholder="custom code (optional)">';
  rows.appendChild(row);
}
document.getElementById("add").onclick = addRow;
addRow();
document.getElementById("shorten").onsubmit = async (e) => {
  e.preventDefault();
  const urls = [...rows.children].map(r => ({
    originalUrl: r.querySelector('[name=originalUrl]').value,
    validityDays: r.querySelector('[name=validityDays]').value,
    shortcode: r.querySelector('[name=shortcode]').value,
  }));
  const res = await fetch("/api/v1/shorten", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({urls}),
  });
  const body = await res.json();
  const errors = document.getElementById("errors");
  const results = document.getElementById("results");
  errors.innerHTML = "";
  results.innerHTML = "";
  if (!res.ok) {
    (body.details || [{message: body.error}]).forEach(d => {
      const li = document.createElement("li");
      li.textContent = d.message;
      errors.appendChild(li);
    });
    return;
  }
  body.links.forEach(l => {
    const li = document.createElement("li");
    li.innerHTML = '<a></a> expires ' + new Date(l.expiryDate).toLocaleString();
    li.firstChild.href = l.shortenedUrl;
    li.firstChild.textContent = l.shortenedUrl;
    results.appendChild(li);
  });
};
</script>
{{template "layout_foot"}}{{end}}

{{define "stats"}}{{template "layout_head"}}
<h1>Statistics</h1>
<p>Total links: {{.Total}}</p>
{{if .Links}}
<table>
<tr><th>Original URL</th><th>Short URL</th><th>Shortcode</th><th>Expires</th><th>Status</th></tr>
{{range .Links}}<tr>
<td>{{.OriginalURL}}</td>
<td><a href="{{.ShortenedURL}}">{{.ShortenedURL}}</a></td>
<td>{{.Shortcode}}</td>
<td>{{.ExpiryDate}}</td>
<td>{{.Status}}</td>
</tr>
{{end}}</table>
<button onclick="fetch('/api/v1/links', {method: 'DELETE'}).then(() => location.reload())">Clear all</button>
{{else}}
<p>No links yet.</p>
{{end}}
{{template "layout_foot"}}{{end}}

{{define "redirect"}}{{template "layout_head"}}
<p>{{.Message}}</p>
{{template "layout_foot"}}{{end}}
`

func loadTemplates() *template.Template {
	return template.Must(template.New("pages").Parse(pageTemplates))
}

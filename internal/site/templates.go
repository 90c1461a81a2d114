package site

// pageTemplate is the html/template for the rendered report page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — {{.ProjectName}}</title>
  <style>{{.CSS}}</style>
</head>
<body>
  <main class="content">
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
</body>
</html>`

const cssContent = `
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --warn-bg: #fff4e6;
  --warn-text: #d9480f;
  --table-stripe: #f8f9fa;
  --content-max-width: 1100px;
}

@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1b26;
    --bg-secondary: #1f2030;
    --text: #c0caf5;
    --text-muted: #565f89;
    --border: #292e42;
    --accent: #7aa2f7;
    --warn-bg: #3b2a1a;
    --warn-text: #ff9e64;
    --table-stripe: #1f2030;
  }
}

*, *::before, *::after { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
}

.content { max-width: var(--content-max-width); margin: 0 auto; padding: 2rem 1.5rem 4rem; }

h1, h2, h3, h4 { line-height: 1.3; }
h1 { border-bottom: 2px solid var(--accent); padding-bottom: .4rem; }
h2 { margin-top: 2.2rem; border-bottom: 1px solid var(--border); padding-bottom: .3rem; }
h3 { margin-top: 1.8rem; }

table { border-collapse: collapse; width: 100%; margin: 1rem 0; font-size: .92rem; }
th, td { border: 1px solid var(--border); padding: .4rem .7rem; text-align: left; }
th { background: var(--bg-secondary); }
tr:nth-child(even) td { background: var(--table-stripe); }
td.over { background: var(--warn-bg); color: var(--warn-text); font-weight: 600; }

code { background: var(--bg-secondary); padding: .1rem .3rem; border-radius: 3px; }
`

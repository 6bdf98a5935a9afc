package render

import (
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/yumyai/protview/pkg/model"
)

const sequencePreviewLength = 80

var browsePageTemplate *template.Template

// BrowsePageData is everything the record list needs.
type BrowsePageData struct {
	View          model.PageView
	DefaultWindow int
	DatasetSource string
}

// previewSequence shortens long sequences the way the cards show them,
// counting characters rather than bytes.
func previewSequence(seq string) string {
	n := 0
	for i := range seq {
		if n == sequencePreviewLength {
			return seq[:i] + "..."
		}
		n++
	}
	return seq
}

// pageURL keeps the query when moving between pages.
func pageURL(query string, page int) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	v.Set("page", strconv.Itoa(page))
	return "/?" + v.Encode()
}

// init initializes the templates used for rendering the HTML page.
func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
	    <link href="/static/style.css" rel="stylesheet"></link>
		<title>Protein Analysis Database</title>
	</head>
	<body>
		{{template "header" .}}
		{{template "searchBar" .}}
		<div class="cards">
		{{range .View.Records}}
			{{template "card" (cardData . $.DefaultWindow)}}
		{{else}}
			<p class="empty">No gene pairs match "{{.View.Query}}".</p>
		{{end}}
		</div>
		{{if .View.HasPagination}}{{template "pagination" .View}}{{end}}
	</body>
	</html>`

	headerTmpl := `
	{{define "header"}}
		<header class="app-header">
			<h1 class="app-name">Protein Analysis Database</h1>
			<p class="app-description">Gene Expression and Sequence Analysis Platform</p>
		</header>
		<div class="stats">
			<span>Database Statistics</span>
			<span class="mono">{{.View.First}}-{{.View.Last}}</span> of
			<span class="mono">{{.View.TotalItems}}</span> entries
		</div>
	{{end}}`

	searchTmpl := `
	{{define "searchBar"}}
		<form id="searchForm" action="/" method="GET">
			<p class="hint">
				Search for specific gene pairs using exact gene names. The search is case-insensitive
				and matches either host gene (HGENE) or target gene (TGENE) names.
			</p>
			<!-- No page field: a new query always starts at page 1 -->
			<input type="text" name="q" placeholder="Enter gene name (e.g., SCEL, ABCC4)" value="{{.View.Query}}"></input>
			<input type="submit" value="Search"></input>
		</form>
	{{end}}`

	cardTmpl := `
	{{define "card"}}
	{{$r := .Record}}
		<div class="card">
			<div class="card-header">
				<h2>{{$r.HostGeneName}} &harr; {{$r.TargetGeneName}}</h2>
				<span class="badge {{if $r.IsOutOfFrame}}badge-red{{else}}badge-green{{end}}">{{$r.FrameStatus}}</span>
				<span class="badge {{if $r.IsAnalyzed}}badge-blue{{else}}badge-grey{{end}}">{{$r.AnalysisStatus}}</span>
				[<a href="/records/{{$r.ID.OID}}/csv">Download CSV</a>]
			</div>
			{{if $r.SequenceDescription}}
				<div class="card-desc">
					<h3>Sequence Analysis</h3>
					<p>{{$r.SequenceDescription}}</p>
				</div>
			{{end}}
			<div class="card-sequences">
				{{template "sequence" (seqData $r "host" $r.HostGeneName $r.HostSequence .Window)}}
				{{template "sequence" (seqData $r "target" $r.TargetGeneName $r.TargetSequence .Window)}}
			</div>
		</div>
	{{end}}`

	sequenceTmpl := `
	{{define "sequence"}}
		<div class="sequence">
			<h3>{{if eq .Side "host"}}Host{{else}}Target{{end}} Gene Sequence</h3>
			<div>Gene: <span class="mono">{{.Gene}}</span>
				[<a href="/records/{{.ID}}/chart?side={{.Side}}&window={{.Window}}" target="_blank">View Chart</a>]
				[<a href="/records/{{.ID}}/blastp?side={{.Side}}" target="_blank">BLASTP</a>]
			</div>
			{{if .Sequence}}
				<code class="mono" title="{{.Sequence}}">{{preview .Sequence}}</code>
			{{else}}
				<code>No sequence available</code>
			{{end}}
		</div>
	{{end}}`

	paginationTmpl := `{{define "pagination"}}
	<div class="pagination">
		{{if .HasPrev}}
			<a href="{{pageURL .Query .PrevPage}}">&lt;&lt; prev</a>
		{{else}}
			<span>&lt;&lt; prev</span>
		{{end}}
		<span>{{.Page}} / {{.TotalPages}}</span>
		{{if .HasNext}}
			<a href="{{pageURL .Query .NextPage}}">next &gt;&gt;</a>
		{{else}}
			<span>next &gt;&gt;</span>
		{{end}}
	</div>{{end}}`

	funcMap := template.FuncMap{
		"preview": previewSequence,
		"pageURL": pageURL,
		"cardData": func(r model.Record, window int) map[string]interface{} {
			return map[string]interface{}{"Record": r, "Window": window}
		},
		"seqData": func(r model.Record, side, gene, seq string, window int) map[string]interface{} {
			return map[string]interface{}{
				"ID": r.ID.OID, "Side": side, "Gene": gene, "Sequence": seq, "Window": window,
			}
		},
	}

	browsePageTemplate = template.New("browse").Funcs(funcMap)
	browsePageTemplate = template.Must(browsePageTemplate.Parse(mainTmpl))
	browsePageTemplate = template.Must(browsePageTemplate.Parse(headerTmpl))
	browsePageTemplate = template.Must(browsePageTemplate.Parse(searchTmpl))
	browsePageTemplate = template.Must(browsePageTemplate.Parse(cardTmpl))
	browsePageTemplate = template.Must(browsePageTemplate.Parse(sequenceTmpl))
	browsePageTemplate = template.Must(browsePageTemplate.Parse(paginationTmpl))
}

// RenderBrowsePage renders one page of gene-pair cards.
func RenderBrowsePage(w io.Writer, data BrowsePageData) error {
	return browsePageTemplate.Execute(w, data)
}

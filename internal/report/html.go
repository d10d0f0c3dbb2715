package report

import (
	"html/template"
	"io"
)

// reportCSS and reportJS are inlined into the page so the report opens as a
// single file with no external resources.
const reportCSS template.CSS = `body{font-family:Arial,sans-serif;margin:20px;background:#fefefe;}
h1{margin-bottom:0.5em;}
table{border-collapse:collapse;width:100%;font-family:Arial,sans-serif;}
th,td{border:1px solid #ccc;padding:8px;text-align:center;}
th{background-color:#f4f4f4;}
.filters th{background-color:#fafafa;}
.filters input{width:100%;box-sizing:border-box;padding:4px;}
tr:nth-child(even){background:#fafafa;}`

// reportJS wires the per-column filter row: numeric columns hide rows whose
// cell value is below the entered minimum, text columns apply a
// case-insensitive substring match.
const reportJS template.JS = `const table=document.getElementById('polyat-table');
const columnFilters=table.querySelectorAll('thead input[data-col]');
function applyFilters(){
  table.querySelectorAll('tbody tr').forEach(row=>{
    let visible=true;
    columnFilters.forEach(input=>{
      if(!visible)return;
      const value=input.value.trim();
      if(!value)return;
      const col=parseInt(input.dataset.col,10);
      const type=input.dataset.type;
      const cell=row.children[col];
      if(!cell)return;
      const cellText=cell.innerText.trim();
      if(type==='number'){
        const cellValue=parseFloat(cellText);
        const filterValue=parseFloat(value);
        if(isNaN(filterValue)||isNaN(cellValue))return;
        if(cellValue<filterValue){visible=false;}
      }else if(!cellText.toLowerCase().includes(value.toLowerCase())){
        visible=false;
      }
    });
    row.style.display=visible?'':'none';
  });
}
columnFilters.forEach(input=>input.addEventListener('input',applyFilters));
applyFilters();`

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>polyA Counts</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>polyA/T Summary</h1>
<table id="polyat-table">
<thead>
<tr>{{range .Columns}}<th>{{.Label}}</th>{{end}}</tr>
<tr class="filters">{{range $i, $c := .Columns}}<th><input data-col="{{$i}}" data-type="{{if $c.Numeric}}number{{else}}text{{end}}" type="{{if $c.Numeric}}number{{else}}text{{end}}" placeholder="{{if $c.Numeric}}min value{{else}}text{{end}}" /></th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<script>{{.JS}}</script>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(reportHTML))

type htmlPage struct {
	CSS     template.CSS
	JS      template.JS
	Columns []Column
	Rows    [][]string
}

// WriteHTML renders the self-contained HTML report for samples. Cell text is
// escaped by the template engine.
func WriteHTML(w io.Writer, samples []Sample) error {
	rows := make([][]string, len(samples))
	for i, s := range samples {
		rows[i] = Row(s)
	}
	return htmlTmpl.Execute(w, htmlPage{
		CSS:     reportCSS,
		JS:      reportJS,
		Columns: Columns,
		Rows:    rows,
	})
}

// Package report summarizes classification runs as console tables and xlsx
// workbooks.
package report

import (
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
	"github.com/shrijwal/f-t-landsuitability/internal/store"
	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

// Summarize counts the suitability classes of one classified layer.
func Summarize(factor suitability.Factor, g *raster.Grid) store.LayerStat {
	return store.LayerStat{
		Factor:          string(factor),
		SuitableCells:   g.CountEqual(float64(suitability.Suitable)),
		ModerateCells:   g.CountEqual(float64(suitability.ModeratelySuitable)),
		UnsuitableCells: g.CountEqual(float64(suitability.NotSuitable)),
	}
}

// WriteTable prints a per-factor class summary for a run.
func WriteTable(w io.Writer, run *store.Run) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	p.Fprintf(tw, "run\t%s\n", run.ID)
	p.Fprintf(tw, "crop\t%s\n", run.Crop)
	p.Fprintf(tw, "status\t%s\n", run.Status)
	if run.Error != "" {
		p.Fprintf(tw, "error\t%s\n", run.Error)
	}
	p.Fprintf(tw, "\n")
	p.Fprintf(tw, "factor\tsuitable\tmoderate\tnot suitable\tsuitable %%\n")

	for _, l := range run.Layers {
		p.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\n",
			l.Factor, l.SuitableCells, l.ModerateCells, l.UnsuitableCells, suitableShare(l)*100)
	}

	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "report: flush table")
	}
	return nil
}

// WriteXLSX exports a run's per-factor class summary as an xlsx workbook.
func WriteXLSX(path string, run *store.Run) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Suitability")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Factor", "Suitable", "Moderate", "Not suitable", "Total", "Suitable share"} {
		header.AddCell().Value = h
	}

	for _, l := range run.Layers {
		row := sheet.AddRow()
		row.AddCell().Value = l.Factor
		row.AddCell().SetInt(l.SuitableCells)
		row.AddCell().SetInt(l.ModerateCells)
		row.AddCell().SetInt(l.UnsuitableCells)
		row.AddCell().SetInt(l.TotalCells())
		row.AddCell().SetFloatWithFormat(suitableShare(l), "0.0%")
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

// suitableShare returns the fraction of cells classified fully suitable.
func suitableShare(l store.LayerStat) float64 {
	total := l.TotalCells()
	if total == 0 {
		return 0
	}
	return float64(l.SuitableCells) / float64(total)
}

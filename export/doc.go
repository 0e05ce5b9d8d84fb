// Package export writes reports in the formats flowreport offers for
// download: semicolon separated CSV, JSON, YAML and a terminal table.
//
// Exporters are looked up by format name:
//
//	exp, err := export.New(export.Config{Format: "csv", BOM: true})
//	if err != nil {
//	    return err
//	}
//	err = exp.Export(ctx, os.Stdout, rep)
//
// Register adds formats beyond the built-in ones.
package export

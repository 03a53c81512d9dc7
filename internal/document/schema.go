package document

import "encoding/xml"

const (
	rootElement = "PEunionProject"

	tagFile       = "File"
	tagUrl        = "Url"
	tagMessageBox = "MessageBox"
)

type xmlProject struct {
	XMLName xml.Name
	Build   *xmlBuild `xml:"Build"`
	Items   *xmlItems `xml:"Items"`
}

type xmlBuild struct {
	OutputBinary   *xmlOutputBinary `xml:"OutputBinary"`
	CodeGeneration *xmlAttrs        `xml:"CodeGeneration"`
	Startup        *xmlAttrs        `xml:"Startup"`
}

type xmlOutputBinary struct {
	Assembly     *xmlAttrs `xml:"Assembly"`
	Icon         *xmlAttrs `xml:"Icon"`
	AssemblyInfo *xmlAttrs `xml:"AssemblyInfo"`
}

// xmlAttrs is an element that only carries attributes. Attribute order is
// kept as written.
type xmlAttrs struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type xmlItems struct {
	Entries []xmlItem `xml:",any"`
}

// xmlItem is any child of <Items>; XMLName selects the variant.
type xmlItem struct {
	XMLName      xml.Name
	Attrs        []xml.Attr `xml:",any,attr"`
	Modification *xmlAttrs  `xml:"Modification"`
	Dropping     *xmlAttrs  `xml:"Dropping"`
	Execution    *xmlAttrs  `xml:"Execution"`
	Antis        *xmlAttrs  `xml:"Antis"`
}

func attrs(pairs ...string) *xmlAttrs {
	out := &xmlAttrs{Attrs: make([]xml.Attr, 0, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		out.Attrs = append(out.Attrs, xml.Attr{Name: xml.Name{Local: pairs[i]}, Value: pairs[i+1]})
	}
	return out
}

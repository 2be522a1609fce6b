package xmltree_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybill-co/caja-api/pkg/xmltree"
)

func testNamespaces() []xmltree.Namespace {
	return []xmltree.Namespace{
		{Prefix: "", URI: "urn:example:root"},
		{Prefix: "cbc", URI: "urn:example:basic"},
	}
}

func TestSerialize_DeclaracionYPrefijos(t *testing.T) {
	root := xmltree.New("", "Invoice")
	root.ChildText("cbc", "ID", "PN1001")

	doc := &xmltree.Document{Root: root, Namespaces: testNamespaces()}
	out, err := doc.Serialize()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`),
		"debe iniciar con la declaración XML")
	assert.Contains(t, out, `<Invoice xmlns="urn:example:root" xmlns:cbc="urn:example:basic">`,
		"los namespaces se declaran una sola vez, en la raíz")
	assert.Contains(t, out, `<cbc:ID>PN1001</cbc:ID>`)
	// Los hijos no redeclaran xmlns
	assert.Equal(t, 1, strings.Count(out, "xmlns:cbc="), "xmlns:cbc solo en la raíz")
}

func TestSerialize_AtributosOrdenados(t *testing.T) {
	root := xmltree.New("", "Invoice")
	root.Child("cbc", "UUID").Attr("schemeID", "2").Attr("schemeName", "CUFE-SHA384")

	doc := &xmltree.Document{Root: root, Namespaces: testNamespaces()}
	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out, `<cbc:UUID schemeID="2" schemeName="CUFE-SHA384"/>`,
		"los atributos conservan el orden de inserción")
}

func TestSerialize_EscapaTextoYAtributos(t *testing.T) {
	root := xmltree.New("", "Invoice")
	root.ChildText("cbc", "Note", `Pan & "Café" <especial>`)

	doc := &xmltree.Document{Root: root, Namespaces: testNamespaces()}
	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out, "Pan &amp; &#34;Café&#34; &lt;especial&gt;")
	assert.NotContains(t, out, "<especial>")
}

func TestSerialize_Determinista(t *testing.T) {
	build := func() *xmltree.Document {
		root := xmltree.New("", "Invoice")
		line := root.Child("cbc", "Line")
		line.ChildText("cbc", "ID", "1")
		line.ChildText("cbc", "Description", "Croissant")
		return &xmltree.Document{Root: root, Namespaces: testNamespaces()}
	}
	a, err := build().Serialize()
	require.NoError(t, err)
	b, err := build().Serialize()
	require.NoError(t, err)
	assert.Equal(t, a, b, "el mismo árbol siempre serializa a los mismos bytes")
}

func TestSerialize_PrefijoNoDeclaradoFalla(t *testing.T) {
	root := xmltree.New("", "Invoice")
	root.ChildText("sts", "QRCode", "https://example.com")

	doc := &xmltree.Document{Root: root, Namespaces: testNamespaces()}
	out, err := doc.Serialize()
	assert.Error(t, err, "un prefijo sin declarar es un fallo de serialización")
	assert.Empty(t, out, "nunca se emite un documento parcial")
}

func TestSerialize_SinRaizFalla(t *testing.T) {
	doc := &xmltree.Document{Namespaces: testNamespaces()}
	_, err := doc.Serialize()
	assert.Error(t, err)
}

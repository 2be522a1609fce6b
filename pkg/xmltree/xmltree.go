// Package xmltree modela un árbol XML con namespaces como un AST tipado:
// elemento (prefijo + nombre local), atributos ordenados, hijos ordenados y
// texto opcional. Un único escritor serializa el árbol con los prefijos
// declarados una sola vez en la raíz, sin inferencia de prefijos.
//
// El cableado de los namespaces UBL/DIAN queda así en un solo lugar,
// verificable de forma aislada de la lógica de facturación.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Namespace asocia un prefijo a su URI. Prefix vacío declara el namespace por defecto.
type Namespace struct {
	Prefix string
	URI    string
}

// Attr atributo con orden de emisión estable.
type Attr struct {
	Name  string
	Value string
}

// Element nodo del árbol. Text y Children son excluyentes en la práctica UBL,
// pero el escritor emite ambos si se llegaran a combinar (texto primero).
type Element struct {
	Prefix   string // prefijo de namespace ("" = namespace por defecto)
	Local    string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// New crea un elemento suelto.
func New(prefix, local string) *Element {
	return &Element{Prefix: prefix, Local: local}
}

// Attr añade un atributo y devuelve el mismo elemento para encadenar.
func (e *Element) Attr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Child crea un hijo, lo anexa y lo devuelve.
func (e *Element) Child(prefix, local string) *Element {
	c := New(prefix, local)
	e.Children = append(e.Children, c)
	return c
}

// ChildText crea un hijo con texto, lo anexa y lo devuelve.
func (e *Element) ChildText(prefix, local, text string) *Element {
	c := e.Child(prefix, local)
	c.Text = text
	return c
}

// Document árbol completo con sus declaraciones de namespace.
type Document struct {
	Root       *Element
	Namespaces []Namespace
}

// Serialize escribe el documento UTF-8 con declaración XML. Todo prefijo usado
// en el árbol debe estar declarado; si no, se retorna error sin emitir nada
// (nunca un documento parcial).
func (d *Document) Serialize() (string, error) {
	if d.Root == nil {
		return "", fmt.Errorf("xmltree: documento sin raíz")
	}
	declared := make(map[string]bool, len(d.Namespaces))
	for _, ns := range d.Namespaces {
		if ns.URI == "" {
			return "", fmt.Errorf("xmltree: namespace %q sin URI", ns.Prefix)
		}
		if declared[ns.Prefix] {
			return "", fmt.Errorf("xmltree: prefijo %q declarado dos veces", ns.Prefix)
		}
		declared[ns.Prefix] = true
	}
	if err := checkPrefixes(d.Root, declared); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteByte('\n')
	if err := writeElement(&buf, d.Root, d.Namespaces); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func checkPrefixes(e *Element, declared map[string]bool) error {
	if e.Local == "" {
		return fmt.Errorf("xmltree: elemento sin nombre local")
	}
	if !declared[e.Prefix] {
		return fmt.Errorf("xmltree: prefijo %q no declarado (elemento %s)", e.Prefix, e.Local)
	}
	for _, c := range e.Children {
		if err := checkPrefixes(c, declared); err != nil {
			return err
		}
	}
	return nil
}

// writeElement emite el elemento y sus hijos. Solo la raíz lleva los xmlns.
func writeElement(buf *bytes.Buffer, e *Element, rootNS []Namespace) error {
	name := qualifiedName(e)
	buf.WriteByte('<')
	buf.WriteString(name)
	for _, ns := range rootNS {
		if ns.Prefix == "" {
			fmt.Fprintf(buf, ` xmlns="%s"`, ns.URI)
		} else {
			fmt.Fprintf(buf, ` xmlns:%s="%s"`, ns.Prefix, ns.URI)
		}
	}
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		if err := escapeInto(buf, a.Value); err != nil {
			return err
		}
		buf.WriteByte('"')
	}
	if e.Text == "" && len(e.Children) == 0 {
		buf.WriteString("/>")
		return nil
	}
	buf.WriteByte('>')
	if e.Text != "" {
		if err := escapeInto(buf, e.Text); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := writeElement(buf, c, nil); err != nil {
			return err
		}
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
	return nil
}

func qualifiedName(e *Element) string {
	if e.Prefix == "" {
		return e.Local
	}
	return e.Prefix + ":" + e.Local
}

func escapeInto(buf *bytes.Buffer, s string) error {
	var tmp strings.Builder
	if err := xml.EscapeText(&tmp, []byte(s)); err != nil {
		return fmt.Errorf("xmltree: escapar %q: %w", s, err)
	}
	buf.WriteString(tmp.String())
	return nil
}

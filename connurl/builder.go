// Package connurl builds driver connection URLs of the form
// "protocol//host[:port]/[database][?properties]".
package connurl

import (
	"fmt"
	"net/url"
	"strings"
)

// Canonical property keys. The database segment is always read from DatabaseProperty,
// and UserProperty/PasswordProperty are renamed to the driver names in the query string.
const (
	DatabaseProperty = "database"
	UserProperty     = "user"
	PasswordProperty = "password"
)

// PropertyNames holds the driver specific names of the reserved properties.
// An empty name disables the rule for that property.
type PropertyNames struct {
	Server   string
	Port     string
	Database string
	User     string
	Password string
}

func (n PropertyNames) reserved() []string {
	return []string{n.Server, n.Port, n.Database, n.User, n.Password}
}

// queryName returns the name a property is emitted under in the query string.
func (n PropertyNames) queryName(key string) string {
	switch {
	case key == UserProperty && n.User != "":
		return n.User
	case key == PasswordProperty && n.Password != "":
		return n.Password
	default:
		return key
	}
}

// Dialect is the protocol and reserved property names of one target driver.
type Dialect struct {
	Protocol string
	Names    PropertyNames
}

// URL builds a connection URL for the dialect. See Build.
func (d Dialect) URL(host HostSpec, props *Properties) (string, error) {
	return Build(d.Protocol, host, d.Names, props)
}

// Build builds a connection URL from a protocol, an optional host spec and a property bag.
//
// A non-nil host replaces the server and port properties entirely. Otherwise the
// authority is read from names.Server and names.Port and followed by "/". The database
// segment comes from DatabaseProperty and is appended without a separator of its own.
// Reserved properties never appear in the query string; the remaining properties are
// emitted in bag order with form-encoded values. props is never modified.
func Build(protocol string, host HostSpec, names PropertyNames, props *Properties) (string, error) {
	if protocol == "" || (host == nil && (names.Server == "" || props.Get(names.Server) == "")) {
		return "", fmt.Errorf("%w: missing protocol and/or host name, could not construct URL", ErrInvalidArgument)
	}

	bag := props.Clone()

	var b strings.Builder
	b.WriteString(protocol)
	if !strings.Contains(protocol, "//") {
		b.WriteString("//")
	}

	if host != nil {
		b.WriteString(host.URL())
	} else {
		b.WriteString(bag.Get(names.Server))
		if names.Port != "" {
			if port := bag.Get(names.Port); port != "" {
				b.WriteString(":")
				b.WriteString(port)
			}
		}
		b.WriteString("/")
	}

	if database := bag.Get(DatabaseProperty); database != "" {
		b.WriteString(database)
		bag.Delete(DatabaseProperty)
	}

	for _, name := range names.reserved() {
		if name != "" && bag.Get(name) != "" {
			bag.Delete(name)
		}
	}

	if query := encodeQuery(bag, names); query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}

	return b.String(), nil
}

// encodeQuery form-encodes keys as well as values, so a property name holding
// reserved characters ("opt[a] b") is emitted as "opt%5Ba%5D+b" rather than verbatim.
// Any byte sequence is encoded losslessly, including invalid UTF-8.
func encodeQuery(bag *Properties, names PropertyNames) string {
	var query strings.Builder

	bag.Range(func(key, value string) bool {
		if query.Len() != 0 {
			query.WriteString("&")
		}
		query.WriteString(url.QueryEscape(names.queryName(key)))
		query.WriteString("=")
		query.WriteString(url.QueryEscape(value))
		return true
	})

	return query.String()
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"github.com/apex/log"
)

// maxSchemaDepth limits the depth of schema walking to prevent infinite
// recursion.
const maxSchemaDepth = 1

// DumpSchema writes a sorted list of attribute keys for the provided type
// to the provided writer. If w is nil, os.Stdout is used. The AWS SDK types
// marshal under their Go field names, so those are what --attrs accepts.
func DumpSchema(prefix string, typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Attributes that are directly available to the --attrs flag.
For the complete payload use --output=raw.`)
	fmt.Fprintln(w, "")

	keys := dumpSchemaWalker(prefix, typ, 0)
	if len(keys) == 0 {
		log.Debugf("No fields found for type: %s", typ.Name())
		return
	}

	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintln(w, key)
	}

}

// dumpSchemaWalker recursively walks a struct type discovering exported
// fields.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []string {
	keys := make([]string, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		log.Debugf("field: %s, type: %s in %s", field.Name, field.Type, field.PkgPath)

		// Skip unexported fields, notably the smithy document serde marker.
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if holder != "" {
			name = fmt.Sprintf("%s.%s", holder, name)
		}

		keys = append(keys, name)

		if depth < maxSchemaDepth {

			switch field.Type.Kind() {
			case reflect.Struct:
				keys = append(keys, dumpSchemaWalker(name, field.Type, depth+1)...)
			case reflect.Ptr:
				if field.Type.Elem().Kind() == reflect.Struct {
					keys = append(keys, dumpSchemaWalker(name, field.Type.Elem(), depth+1)...)
				}
			default:
				log.Debugf("Presumed primitive field type: %s for %s", field.Type.Kind(), name)
			}
		}
	}

	return keys
}

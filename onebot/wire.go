// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package onebot

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrUnregisteredPayload = errors.New("onebot: payload variant has no wire schema")
	ErrMalformed           = errors.New("onebot: malformed frame")
)

// Marshal encodes f in the protobuf wire format. Zero scalars are omitted,
// non-nil nested records are always written so their presence survives a
// round trip.
func Marshal(f *Frame) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrMalformed)
	}
	b, err := appendStruct(nil, reflect.ValueOf(f).Elem())
	if err != nil {
		return nil, err
	}
	if f.Data == nil {
		return b, nil
	}
	e, ok := schemaByGoType[reflect.TypeOf(f.Data)]
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnregisteredPayload, f.Data)
	}
	v := reflect.ValueOf(f.Data)
	if v.IsNil() {
		return b, nil
	}
	body, err := appendStruct(nil, v.Elem())
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, e.field, protowire.BytesType)
	return protowire.AppendBytes(b, body), nil
}

// Unmarshal decodes a frame. Unknown fields are skipped; a payload field with
// an unknown number leaves Data nil.
func Unmarshal(b []byte) (*Frame, error) {
	f := &Frame{}
	err := consumeStruct(b, reflect.ValueOf(f).Elem(), func(num protowire.Number, typ protowire.Type, b []byte) (int, bool, error) {
		e, ok := schemaByField[num]
		if !ok {
			return 0, false, nil
		}
		if typ != protowire.BytesType {
			return 0, true, wireTypeError(num, typ, protowire.BytesType)
		}
		body, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, true, parseError(num, n)
		}
		pv := reflect.New(e.goType.Elem())
		if err := consumeStruct(body, pv.Elem(), nil); err != nil {
			return 0, true, err
		}
		f.Data = pv.Interface().(Payload)
		return n, true, nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

type fieldInfo struct {
	num   protowire.Number
	index int
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("pb")
		if !ok || tag == "-" {
			continue
		}
		num, err := strconv.Atoi(tag)
		if err != nil || num <= 0 {
			continue
		}
		fields = append(fields, fieldInfo{num: protowire.Number(num), index: i})
	}
	fieldCache.Store(t, fields)
	return fields
}

func appendStruct(b []byte, v reflect.Value) ([]byte, error) {
	var err error
	for _, fi := range fieldsOf(v.Type()) {
		if b, err = appendField(b, fi.num, v.Field(fi.index)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func appendField(b []byte, num protowire.Number, v reflect.Value) ([]byte, error) {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			b = protowire.AppendTag(b, num, protowire.VarintType)
			b = protowire.AppendVarint(b, 1)
		}
	case reflect.Int32, reflect.Int64:
		if v.Int() != 0 {
			b = protowire.AppendTag(b, num, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(v.Int()))
		}
	case reflect.String:
		if v.Len() > 0 {
			b = protowire.AppendTag(b, num, protowire.BytesType)
			b = protowire.AppendString(b, v.String())
		}
	case reflect.Pointer:
		if v.IsNil() {
			return b, nil
		}
		if v.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("onebot: field %d: unsupported pointer to %s", num, v.Elem().Kind())
		}
		body, err := appendStruct(nil, v.Elem())
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, body)
	case reflect.Slice:
		return appendSlice(b, num, v)
	case reflect.Map:
		return appendStringMap(b, num, v)
	default:
		return nil, fmt.Errorf("onebot: field %d: unsupported kind %s", num, v.Kind())
	}
	return b, nil
}

func appendSlice(b []byte, num protowire.Number, v reflect.Value) ([]byte, error) {
	if v.Len() == 0 {
		return b, nil
	}
	elem := v.Type().Elem()
	switch {
	case elem.Kind() == reflect.Uint8:
		b = protowire.AppendTag(b, num, protowire.BytesType)
		return protowire.AppendBytes(b, v.Bytes()), nil
	case elem.Kind() == reflect.Int64 || elem.Kind() == reflect.Int32:
		var packed []byte
		for i := 0; i < v.Len(); i++ {
			packed = protowire.AppendVarint(packed, uint64(v.Index(i).Int()))
		}
		b = protowire.AppendTag(b, num, protowire.BytesType)
		return protowire.AppendBytes(b, packed), nil
	case elem.Kind() == reflect.Pointer && elem.Elem().Kind() == reflect.Struct:
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i)
			if item.IsNil() {
				continue
			}
			body, err := appendStruct(nil, item.Elem())
			if err != nil {
				return nil, err
			}
			b = protowire.AppendTag(b, num, protowire.BytesType)
			b = protowire.AppendBytes(b, body)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("onebot: field %d: unsupported slice of %s", num, elem)
	}
}

// appendStringMap writes map entries in key order so the encoding is deterministic.
func appendStringMap(b []byte, num protowire.Number, v reflect.Value) ([]byte, error) {
	if v.Type().Key().Kind() != reflect.String || v.Type().Elem().Kind() != reflect.String {
		return nil, fmt.Errorf("onebot: field %d: unsupported map %s", num, v.Type())
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	for _, k := range keys {
		var entry []byte
		entry = protowire.AppendTag(entry, 1, protowire.BytesType)
		entry = protowire.AppendString(entry, k)
		entry = protowire.AppendTag(entry, 2, protowire.BytesType)
		entry = protowire.AppendString(entry, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())).String())
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b, nil
}

// extraFieldFunc handles a field number the struct does not declare. It
// returns the bytes consumed and whether it took the field.
type extraFieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, bool, error)

func consumeStruct(b []byte, v reflect.Value, extra extraFieldFunc) error {
	fields := fieldsOf(v.Type())
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return parseError(0, n)
		}
		b = b[n:]

		idx := slices.IndexFunc(fields, func(fi fieldInfo) bool { return fi.num == num })
		if idx < 0 {
			if extra != nil {
				m, taken, err := extra(num, typ, b)
				if err != nil {
					return err
				}
				if taken {
					b = b[m:]
					continue
				}
			}
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return parseError(num, m)
			}
			b = b[m:]
			continue
		}

		m, err := consumeField(b, num, typ, v.Field(fields[idx].index))
		if err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

func consumeField(b []byte, num protowire.Number, typ protowire.Type, v reflect.Value) (int, error) {
	switch v.Kind() {
	case reflect.Bool, reflect.Int32, reflect.Int64:
		if typ != protowire.VarintType {
			return 0, wireTypeError(num, typ, protowire.VarintType)
		}
		x, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		if v.Kind() == reflect.Bool {
			v.SetBool(x != 0)
		} else {
			v.SetInt(int64(x))
		}
		return n, nil
	case reflect.String:
		if typ != protowire.BytesType {
			return 0, wireTypeError(num, typ, protowire.BytesType)
		}
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		v.SetString(s)
		return n, nil
	case reflect.Pointer:
		if typ != protowire.BytesType {
			return 0, wireTypeError(num, typ, protowire.BytesType)
		}
		body, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, parseError(num, n)
		}
		pv := reflect.New(v.Type().Elem())
		if err := consumeStruct(body, pv.Elem(), nil); err != nil {
			return 0, err
		}
		v.Set(pv)
		return n, nil
	case reflect.Slice:
		return consumeSliceItem(b, num, typ, v)
	case reflect.Map:
		return consumeMapEntry(b, num, typ, v)
	default:
		return 0, fmt.Errorf("onebot: field %d: unsupported kind %s", num, v.Kind())
	}
}

func consumeSliceItem(b []byte, num protowire.Number, typ protowire.Type, v reflect.Value) (int, error) {
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Int64 || elem.Kind() == reflect.Int32 {
		switch typ {
		case protowire.VarintType:
			x, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, parseError(num, n)
			}
			v.Set(reflect.Append(v, reflect.ValueOf(int64(x)).Convert(elem)))
			return n, nil
		case protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, parseError(num, n)
			}
			for len(packed) > 0 {
				x, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return 0, parseError(num, m)
				}
				v.Set(reflect.Append(v, reflect.ValueOf(int64(x)).Convert(elem)))
				packed = packed[m:]
			}
			return n, nil
		default:
			return 0, wireTypeError(num, typ, protowire.BytesType)
		}
	}

	if typ != protowire.BytesType {
		return 0, wireTypeError(num, typ, protowire.BytesType)
	}
	body, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, parseError(num, n)
	}
	switch {
	case elem.Kind() == reflect.Uint8:
		v.SetBytes(append([]byte(nil), body...))
	case elem.Kind() == reflect.Pointer && elem.Elem().Kind() == reflect.Struct:
		pv := reflect.New(elem.Elem())
		if err := consumeStruct(body, pv.Elem(), nil); err != nil {
			return 0, err
		}
		v.Set(reflect.Append(v, pv))
	default:
		return 0, fmt.Errorf("onebot: field %d: unsupported slice of %s", num, elem)
	}
	return n, nil
}

func consumeMapEntry(b []byte, num protowire.Number, typ protowire.Type, v reflect.Value) (int, error) {
	if typ != protowire.BytesType {
		return 0, wireTypeError(num, typ, protowire.BytesType)
	}
	entry, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, parseError(num, n)
	}
	var key, val string
	for len(entry) > 0 {
		enum, etyp, m := protowire.ConsumeTag(entry)
		if m < 0 {
			return 0, parseError(num, m)
		}
		entry = entry[m:]
		if (enum == 1 || enum == 2) && etyp == protowire.BytesType {
			s, m := protowire.ConsumeString(entry)
			if m < 0 {
				return 0, parseError(num, m)
			}
			if enum == 1 {
				key = s
			} else {
				val = s
			}
			entry = entry[m:]
			continue
		}
		m = protowire.ConsumeFieldValue(enum, etyp, entry)
		if m < 0 {
			return 0, parseError(num, m)
		}
		entry = entry[m:]
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	v.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), reflect.ValueOf(val).Convert(v.Type().Elem()))
	return n, nil
}

func parseError(num protowire.Number, n int) error {
	return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
}

func wireTypeError(num protowire.Number, got, want protowire.Type) error {
	return fmt.Errorf("%w: field %d: wire type %d, want %d", ErrMalformed, num, got, want)
}

package config

import (
	"fmt"
	"reflect"
)

// Clone returns a deep copy of v. Slices, maps, pointers and interfaces
// reachable through exported fields are duplicated, so the copy shares no
// mutable storage with v.
func Clone[T any](v T) T {
	src := reflect.ValueOf(&v).Elem()
	dst := reflect.New(src.Type()).Elem()
	deepCopy(dst, src)
	return dst.Interface().(T)
}

// Merge overlays patch onto a clone of base and returns the clone. base is
// never modified. A nil patch yields a plain deep copy.
//
// Fields are matched by name. For every patch field that is present (not a
// nil pointer, slice, map or interface): when both sides are records
// (structs or maps) they are merged recursively, otherwise the patch value
// replaces the base value wholesale. Slices are replaced, never merged.
// A patch field with no counterpart in base, or with an unassignable type,
// panics: that is a schema bug, not a user error.
func Merge[T any, P any](base T, patch *P) T {
	out := Clone(base)
	if patch == nil {
		return out
	}
	dst := reflect.ValueOf(&out).Elem()
	apply(dst, reflect.ValueOf(patch).Elem(), dst.Type().Name())
	return out
}

func isRecord(v reflect.Value) bool {
	return v.Kind() == reflect.Struct || v.Kind() == reflect.Map
}

func isAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return !v.IsValid()
}

// apply writes patch value pv into dst following the record-vs-leaf rule.
func apply(dst, pv reflect.Value, path string) {
	if isAbsent(pv) {
		return
	}
	v := pv
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	if dst.Kind() == reflect.Interface && !dst.IsNil() {
		inner := dst.Elem()
		if isRecord(inner) && isRecord(v) {
			tmp := reflect.New(inner.Type()).Elem()
			tmp.Set(inner)
			apply(tmp, v, path)
			dst.Set(tmp)
			return
		}
	}

	switch {
	case dst.Kind() == reflect.Struct && v.Kind() == reflect.Struct:
		mergeStruct(dst, v, path)
	case dst.Kind() == reflect.Map && v.Kind() == reflect.Map:
		mergeMap(dst, v, path)
	default:
		replace(dst, v, path)
	}
}

func mergeStruct(dst, src reflect.Value, path string) {
	st := src.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		df := dst.FieldByName(field.Name)
		if !df.IsValid() || !df.CanSet() {
			panic(fmt.Sprintf("config: patch field %s.%s has no counterpart in %s", path, field.Name, dst.Type()))
		}
		apply(df, src.Field(i), path+"."+field.Name)
	}
}

func mergeMap(dst, src reflect.Value, path string) {
	if dst.IsNil() {
		dst.Set(reflect.MakeMapWithSize(dst.Type(), src.Len()))
	}
	keyType := dst.Type().Key()
	elemType := dst.Type().Elem()
	iter := src.MapRange()
	for iter.Next() {
		key := iter.Key()
		if !key.Type().AssignableTo(keyType) {
			if !key.Type().ConvertibleTo(keyType) || key.Kind() != keyType.Kind() {
				panic(fmt.Sprintf("config: patch key %v at %s cannot be used as %s", key, path, keyType))
			}
			key = key.Convert(keyType)
		}
		if isAbsent(iter.Value()) {
			continue
		}
		slot := reflect.New(elemType).Elem()
		if existing := dst.MapIndex(key); existing.IsValid() {
			slot.Set(existing)
		}
		apply(slot, iter.Value(), fmt.Sprintf("%s[%v]", path, key))
		dst.SetMapIndex(key, slot)
	}
}

func replace(dst, v reflect.Value, path string) {
	c := reflect.New(v.Type()).Elem()
	deepCopy(c, v)
	switch {
	case c.Type().AssignableTo(dst.Type()):
		dst.Set(c)
	case c.Kind() == dst.Kind() && c.Type().ConvertibleTo(dst.Type()):
		dst.Set(c.Convert(dst.Type()))
	default:
		panic(fmt.Sprintf("config: patch value of type %s at %s does not fit %s", c.Type(), path, dst.Type()))
	}
}

func deepCopy(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Struct:
		dst.Set(src)
		for i := 0; i < src.NumField(); i++ {
			if f := dst.Field(i); f.CanSet() {
				deepCopy(f, src.Field(i))
			}
		}
	case reflect.Slice:
		if src.IsNil() {
			dst.Set(reflect.Zero(src.Type()))
			return
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			deepCopy(s.Index(i), src.Index(i))
		}
		dst.Set(s)
	case reflect.Array:
		dst.Set(src)
		for i := 0; i < src.Len(); i++ {
			deepCopy(dst.Index(i), src.Index(i))
		}
	case reflect.Map:
		if src.IsNil() {
			dst.Set(reflect.Zero(src.Type()))
			return
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			val := reflect.New(src.Type().Elem()).Elem()
			deepCopy(val, iter.Value())
			m.SetMapIndex(iter.Key(), val)
		}
		dst.Set(m)
	case reflect.Pointer:
		if src.IsNil() {
			dst.Set(reflect.Zero(src.Type()))
			return
		}
		p := reflect.New(src.Type().Elem())
		deepCopy(p.Elem(), src.Elem())
		dst.Set(p)
	case reflect.Interface:
		if src.IsNil() {
			dst.Set(reflect.Zero(src.Type()))
			return
		}
		inner := src.Elem()
		c := reflect.New(inner.Type()).Elem()
		deepCopy(c, inner)
		dst.Set(c)
	default:
		dst.Set(src)
	}
}

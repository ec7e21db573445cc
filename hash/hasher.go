package hash

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
	"lukechampine.com/blake3"
)

// canonicalNaN is the single bit pattern all NaNs collapse to.
const canonicalNaN = 0x7ff8000000000000

// Hasher computes content digests over the canonical payload stream. It is
// stateless apart from the stream version tag and safe for concurrent use.
type Hasher struct {
	version string
}

// New returns a Hasher for the current stream version.
func New() *Hasher {
	return &Hasher{version: Version}
}

// Hash computes the content digest of v. It is a pure function: identical
// content always yields the identical digest, and payloads outside the
// supported set fail with *UnsupportedPayloadTypeError.
func (h *Hasher) Hash(v any) (Digest, error) {
	st := blake3.New(DigestSize, nil)
	st.Write([]byte(h.version))
	if err := h.hashValue(st, v); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], st.Sum(nil))
	return d, nil
}

// nodeHeader is the structural signature written ahead of each node's
// content bytes. msgpack keeps the encoding compact and unambiguous; struct
// field order makes it deterministic.
type nodeHeader struct {
	Tag   string `msgpack:"t"`
	Shape []int  `msgpack:"s,omitempty"`
	Elem  string `msgpack:"e,omitempty"`
	Width int    `msgpack:"w,omitempty"`
	Len   int    `msgpack:"n,omitempty"`
}

func writeHeader(w io.Writer, hdr nodeHeader) error {
	raw, err := msgpack.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("hash: encode node header: %w", err)
	}
	_, err = w.Write(raw)
	return err
}

// hashValue dispatches on the payload type. Interface payloads (Digester,
// Buffer, Tuple) are checked ahead of the scalar and container cases;
// everything the typed switch misses goes through reflection.
func (h *Hasher) hashValue(w io.Writer, v any) error {
	switch val := v.(type) {
	case nil:
		return writeHeader(w, nodeHeader{Tag: "nil"})
	case Digest:
		return h.hashDigest(w, val)
	case Digester:
		d, err := val.Digest()
		if err != nil {
			return err
		}
		return h.hashDigest(w, d)
	case Buffer:
		return h.hashBuffer(w, val)
	case Tuple:
		return h.hashTuple(w, val)
	case bool:
		return h.hashBool(w, val)
	case int:
		return h.hashInt(w, int64(val))
	case int64:
		return h.hashInt(w, val)
	case uint64:
		return h.hashUint(w, val)
	case float64:
		return h.hashFloat(w, val)
	case string:
		return h.hashString(w, val)
	case []byte:
		return h.hashBytes(w, val)
	case map[string]any:
		return h.hashStringMap(w, val)
	case []any:
		return h.hashSeq(w, len(val), func(i int) any { return val[i] })
	}
	return h.hashReflect(w, v)
}

// hashReflect handles the remaining payload kinds the way the typed switch
// handles the common ones: named scalar types by kind, slices, arrays,
// string-keyed maps, and pointers. Anything else is unsupported.
func (h *Hasher) hashReflect(w io.Writer, v any) error {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return h.hashBool(w, rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return h.hashInt(w, rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return h.hashUint(w, rv.Uint())

	case reflect.Float32, reflect.Float64:
		return h.hashFloat(w, rv.Float())

	case reflect.String:
		return h.hashString(w, rv.String())

	case reflect.Ptr:
		if rv.IsNil() {
			return writeHeader(w, nodeHeader{Tag: "nil"})
		}
		return h.hashValue(w, rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return writeHeader(w, nodeHeader{Tag: "nil"})
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return h.hashBytes(w, rv.Bytes())
		}
		return h.hashSeq(w, rv.Len(), func(i int) any { return rv.Index(i).Interface() })

	case reflect.Array:
		return h.hashSeq(w, rv.Len(), func(i int) any { return rv.Index(i).Interface() })

	case reflect.Map:
		if rv.IsNil() {
			return writeHeader(w, nodeHeader{Tag: "nil"})
		}
		if rv.Type().Key().Kind() != reflect.String {
			return &UnsupportedPayloadTypeError{Type: rv.Type().String()}
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return h.hashStringMap(w, m)
	}

	return &UnsupportedPayloadTypeError{Type: reflect.TypeOf(v).String()}
}

func (h *Hasher) hashDigest(w io.Writer, d Digest) error {
	if err := writeHeader(w, nodeHeader{Tag: "digest"}); err != nil {
		return err
	}
	_, err := w.Write(d[:])
	return err
}

func (h *Hasher) hashBuffer(w io.Writer, b Buffer) error {
	hdr := nodeHeader{
		Tag:   "buffer",
		Shape: b.BufferShape(),
		Elem:  b.BufferElem(),
		Width: b.BufferWidth(),
	}
	if err := writeHeader(w, hdr); err != nil {
		return err
	}
	_, err := w.Write(b.BufferBytes())
	return err
}

func (h *Hasher) hashTuple(w io.Writer, t Tuple) error {
	scalars := t.TupleScalars()
	if err := writeHeader(w, nodeHeader{Tag: "tuple:" + t.TupleTag(), Len: len(scalars)}); err != nil {
		return err
	}
	for _, s := range scalars {
		if err := writeFloatBits(w, s); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashBool(w io.Writer, v bool) error {
	if err := writeHeader(w, nodeHeader{Tag: "bool"}); err != nil {
		return err
	}
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// hashInt encodes all signed widths as int64, so a scalar that only changes
// width keeps its digest.
func (h *Hasher) hashInt(w io.Writer, v int64) error {
	if err := writeHeader(w, nodeHeader{Tag: "int"}); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

func (h *Hasher) hashUint(w io.Writer, v uint64) error {
	if err := writeHeader(w, nodeHeader{Tag: "uint"}); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func (h *Hasher) hashFloat(w io.Writer, v float64) error {
	if err := writeHeader(w, nodeHeader{Tag: "float"}); err != nil {
		return err
	}
	return writeFloatBits(w, v)
}

func (h *Hasher) hashString(w io.Writer, v string) error {
	if err := writeHeader(w, nodeHeader{Tag: "string", Len: len(v)}); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

func (h *Hasher) hashBytes(w io.Writer, v []byte) error {
	if err := writeHeader(w, nodeHeader{Tag: "bytes", Len: len(v)}); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}

// hashStringMap mixes (key, child digest) pairs sorted by key bytes, making
// the container digest invariant to insertion order.
func (h *Hasher) hashStringMap(w io.Writer, m map[string]any) error {
	type pair struct {
		key    string
		digest Digest
	}

	pairs := make([]pair, 0, len(m))
	for k, v := range m {
		d, err := h.Hash(v)
		if err != nil {
			return err
		}
		pairs = append(pairs, pair{key: k, digest: d})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	if err := writeHeader(w, nodeHeader{Tag: "map", Len: len(pairs)}); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := writeHeader(w, nodeHeader{Tag: "key", Len: len(p.key)}); err != nil {
			return err
		}
		if _, err := io.WriteString(w, p.key); err != nil {
			return err
		}
		if _, err := w.Write(p.digest[:]); err != nil {
			return err
		}
	}
	return nil
}

// hashSeq mixes child digests in position order, so reordering elements
// changes the container digest.
func (h *Hasher) hashSeq(w io.Writer, length int, elem func(int) any) error {
	if err := writeHeader(w, nodeHeader{Tag: "list", Len: length}); err != nil {
		return err
	}
	var idx [8]byte
	for i := 0; i < length; i++ {
		d, err := h.Hash(elem(i))
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(idx[:], uint64(i))
		if _, err := w.Write(idx[:]); err != nil {
			return err
		}
		if _, err := w.Write(d[:]); err != nil {
			return err
		}
	}
	return nil
}

func writeFloatBits(w io.Writer, f float64) error {
	if f == 0 {
		// collapse negative zero
		f = 0
	}
	bits := math.Float64bits(f)
	if math.IsNaN(f) {
		bits = canonicalNaN
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], bits)
	_, err := w.Write(buf[:])
	return err
}

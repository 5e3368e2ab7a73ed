package ndpopt

import (
	"bytes"
	"testing"
)

func TestFillAddressOptionRoundTrip(t *testing.T) {
	lladdr := []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	buf := make([]byte, 16)
	n, err := FillAddressOption(buf, TypeSourceLL, lladdr, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 { // ceil((2+6)/8)*8 = 8
		t.Fatalf("expected 8 bytes written, got %d", n)
	}
	opts, err := Parse(buf[:n])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opts.SourceLL, lladdr) {
		t.Errorf("got %x want %x", opts.SourceLL, lladdr)
	}
}

func TestFillAddressOptionInfinibandPad(t *testing.T) {
	lladdr := make([]byte, 20)
	for i := range lladdr {
		lladdr[i] = byte(i)
	}
	buf := make([]byte, 32)
	n, err := FillAddressOption(buf, TypeTargetLL, lladdr, 6)
	if err != nil {
		t.Fatal(err)
	}
	if n != 32 { // ceil((2+6+20)/8)*8 = 32
		t.Fatalf("expected 32 bytes, got %d", n)
	}
	opts, err := Parse(buf[:n])
	if err != nil {
		t.Fatal(err)
	}
	// Parse returns the whole option body: 6 pad bytes, the address, then
	// zero fill up to the 8-byte boundary.
	if got := opts.TargetLL[6 : 6+len(lladdr)]; !bytes.Equal(got, lladdr) {
		t.Errorf("got %x want %x", got, lladdr)
	}
}

func TestParseZeroLengthRejected(t *testing.T) {
	buf := []byte{TypeSourceLL, 0, 0, 0, 0, 0, 0, 0}
	_, err := Parse(buf)
	if err != ErrZeroLength {
		t.Fatalf("got %v want ErrZeroLength", err)
	}
}

func TestParseTruncatedRejected(t *testing.T) {
	// Declares 2 units (16 bytes) but buffer only has 8.
	buf := []byte{TypeSourceLL, 2, 0, 0, 0, 0, 0, 0}
	_, err := Parse(buf)
	if err != ErrTruncated {
		t.Fatalf("got %v want ErrTruncated", err)
	}
}

func TestParseDuplicateSingletonKeepsFirst(t *testing.T) {
	first := []byte{TypeSourceLL, 1, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	second := []byte{TypeSourceLL, 1, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	buf := append(append([]byte{}, first...), second...)
	opts, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opts.SourceLL, first[2:]) {
		t.Errorf("expected first occurrence retained, got %x", opts.SourceLL)
	}
	if len(opts.Duplicates()) != 1 || opts.Duplicates()[0] != TypeSourceLL {
		t.Errorf("expected one recorded duplicate of type SourceLL, got %v", opts.Duplicates())
	}
}

func TestParseUnknownOptionSkippedSilently(t *testing.T) {
	unknown := []byte{200, 1, 0, 0, 0, 0, 0, 0}
	sll := []byte{TypeSourceLL, 1, 1, 2, 3, 4, 5, 6}
	buf := append(append([]byte{}, unknown...), sll...)
	opts, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opts.SourceLL, sll[2:]) {
		t.Errorf("expected source-LL to still parse past unknown option, got %x", opts.SourceLL)
	}
}

func TestIterPrefixInfo(t *testing.T) {
	// Two 4-unit (32 byte) prefix-info placeholders back to back.
	one := make([]byte, 32)
	one[0], one[1] = TypePrefixInfo, 4
	two := make([]byte, 32)
	two[0], two[1] = TypePrefixInfo, 4
	two[2] = 64 // prefix length marker to distinguish
	buf := append(append([]byte{}, one...), two...)

	opts, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	it := opts.Prefixes()
	count := 0
	for {
		_, body, ok := it.Next()
		if !ok {
			break
		}
		count++
		_ = body
	}
	if count != 2 {
		t.Fatalf("expected 2 prefix-info options, got %d", count)
	}
}

func TestIterUserOptsMatchesBothRDNSSAndDNSSL(t *testing.T) {
	rdnss := make([]byte, 8)
	rdnss[0], rdnss[1] = TypeRDNSS, 1
	dnssl := make([]byte, 8)
	dnssl[0], dnssl[1] = TypeDNSSL, 1
	buf := append(append([]byte{}, rdnss...), dnssl...)

	opts, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	it := opts.UserOpts()
	var types []uint8
	for {
		typ, _, ok := it.Next()
		if !ok {
			break
		}
		types = append(types, typ)
	}
	if len(types) != 2 || types[0] != TypeRDNSS || types[1] != TypeDNSSL {
		t.Errorf("got %v, want [RDNSS DNSSL]", types)
	}
}

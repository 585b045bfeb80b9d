package osc

// Shared packet test cases. Every raw buffer is the exact wire image of its
// obj, so the same table drives marshal, unmarshal and round-trip tests.
type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

var messageTestCases = []testCase{
	{
		name: "no arguments",
		obj:  &Message{Address: "/a", Arguments: []interface{}{}},
		raw:  []byte("/a\x00\x00,\x00\x00\x00"),
	},
	{
		name: "int and float",
		obj:  &Message{Address: "/tuio/2Dcur", Arguments: []interface{}{int32(5), float32(0.5)}},
		raw:  []byte("/tuio/2Dcur\x00,if\x00\x00\x00\x00\x05\x3f\x00\x00\x00"),
	},
	{
		name: "string",
		obj:  &Message{Address: "/test", Arguments: []interface{}{"hello"}},
		raw:  []byte("/test\x00\x00\x00,s\x00\x00hello\x00\x00\x00"),
	},
	{
		name: "blob",
		obj:  &Message{Address: "/b", Arguments: []interface{}{[]byte{1, 2, 3}}},
		raw:  []byte("/b\x00\x00,b\x00\x00\x00\x00\x00\x03\x01\x02\x03\x00"),
	},
	{
		name: "all types",
		obj: &Message{Address: "/x", Arguments: []interface{}{
			int32(1), float32(1), "s", []byte{4}, int64(2), float64(1), Timetag(1), true, false, nil,
		}},
		raw: []byte("/x\x00\x00,ifsbhdtTFN\x00" +
			"\x00\x00\x00\x01" +
			"\x3f\x80\x00\x00" +
			"s\x00\x00\x00" +
			"\x00\x00\x00\x01\x04\x00\x00\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x02" +
			"\x3f\xf0\x00\x00\x00\x00\x00\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x01"),
	},
}

var bundleTestCases = []testCase{
	{
		name: "empty bundle",
		obj:  &Bundle{Timetag: TimetagImmediate},
		raw: []byte("#bundle\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x01"),
	},
	{
		name: "bundle with message",
		obj: &Bundle{Timetag: TimetagImmediate, Elements: []Packet{
			&Message{Address: "/a", Arguments: []interface{}{}},
		}},
		raw: []byte("#bundle\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x00\x00\x00\x08" + "/a\x00\x00,\x00\x00\x00"),
	},
	{
		name: "nested bundle",
		obj: &Bundle{Timetag: Timetag(2), Elements: []Packet{
			&Bundle{Timetag: TimetagImmediate, Elements: []Packet{
				&Message{Address: "/a", Arguments: []interface{}{}},
			}},
			&Message{Address: "/tuio/2Dcur", Arguments: []interface{}{int32(5), float32(0.5)}},
		}},
		raw: []byte("#bundle\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x02" +
			"\x00\x00\x00\x1c" +
			"#bundle\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x00\x00\x00\x08" + "/a\x00\x00,\x00\x00\x00" +
			"\x00\x00\x00\x18" +
			"/tuio/2Dcur\x00,if\x00\x00\x00\x00\x05\x3f\x00\x00\x00"),
	},
}

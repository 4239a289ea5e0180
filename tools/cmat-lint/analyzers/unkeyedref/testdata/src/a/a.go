package a

type ResourceRef struct {
	Archive int
	Record  int
	Frame   int
}

type point struct {
	X, Y int
}

func Ref(archive, record, frame int) ResourceRef {
	return ResourceRef{Archive: archive, Record: record, Frame: frame}
}

func bad() []ResourceRef {
	return []ResourceRef{
		ResourceRef{302, 1, 0}, // want "unkeyed ResourceRef literal"
		{420, 0, 2},            // want "unkeyed ResourceRef literal"
	}
}

func good() []ResourceRef {
	return []ResourceRef{
		{Archive: 302, Record: 1, Frame: 0},
		Ref(420, 0, 2),
		{},
	}
}

func other() point {
	return point{1, 2}
}

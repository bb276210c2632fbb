package forbiddencalls

func shadowed() {
	panic := func(string) {}
	panic("not the builtin")
}

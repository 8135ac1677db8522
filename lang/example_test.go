package lang_test

import (
	"fmt"
	"os"

	"github.com/ardnew/arith/lang"
)

func ExampleParse() {
	n, err := lang.Parse("x / 7 + 42 * 8 / (8 - 6)")
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(n)
	// Output: ((x / 7) + ((42 * 8) / (8 - 6)))
}

func ExampleEval() {
	n, err := lang.Parse("6 + (-4 + (3*x+7) * y * 9 / (4 + 3))")
	if err != nil {
		fmt.Println(err)

		return
	}

	v, err := lang.Eval(n, lang.Vars{"x": lang.Int(7), "y": lang.Int(2)})
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(v)
	// Output: 74.0
}

func ExampleSimplify() {
	for _, src := range []string{"6/3", "7/2", "x * (2 + 3.5)"} {
		n, err := lang.Parse(src)
		if err != nil {
			fmt.Println(err)

			return
		}

		s, err := lang.Simplify(n)
		if err != nil {
			fmt.Println(err)

			return
		}

		fmt.Println(s)
	}
	// Output:
	// 2
	// 3.5
	// (x * 5.5)
}

func ExampleFormatError() {
	src := "(1 + 2"

	_, err := lang.Parse(src)

	fmt.Print(lang.FormatError(src, err))
	// Output:
	// parse error at line 1, column 7: expected ")" to close "(" at line 1, column 1, found end of input
	//   1 | (1 + 2
	//             ^
}

func ExampleEncodeJSON() {
	n, err := lang.Parse("-a")
	if err != nil {
		fmt.Println(err)

		return
	}

	if err := lang.EncodeJSON(os.Stdout, n, 0); err != nil {
		fmt.Println(err)
	}
	// Output: {"kind":"UnaryOp","op":"Negate","operand":{"kind":"Identifier","name":"a"}}
}

// interpreter_test.go
package phpjs

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/aymanbagabas/go-udiff"
)

// --- helpers ---------------------------------------------------------------

func wantOutput(t *testing.T, src, want string) {
	t.Helper()
	got := Run(src)
	if got != want {
		if strings.Contains(want, "\n") || strings.Contains(got, "\n") {
			t.Fatalf("output mismatch for:\n%s\n%s", src, udiff.Unified("want", "got", want, got))
		}
		t.Fatalf("source:\n%s\nwant output: %q\ngot output:  %q", src, want, got)
	}
}

func wantOutputContains(t *testing.T, src, substr string) {
	t.Helper()
	got := Run(src)
	if !strings.Contains(got, substr) {
		t.Fatalf("source:\n%s\noutput %q does not contain %q", src, got, substr)
	}
}

// --- end-to-end scenarios --------------------------------------------------

func Test_Interp_ArithmeticAndConcat(t *testing.T) {
	wantOutput(t, `$x=10; $y=20; echo "sum=" . ($x+$y);`, "sum=30")
}

func Test_Interp_FunctionAndReturn(t *testing.T) {
	wantOutput(t, `function add($a,$b){ return $a+$b; } $s=add(2,3); echo $s;`, "5")
}

func Test_Interp_IfElseifElse(t *testing.T) {
	wantOutput(t, `$n=0; if($n>0){echo "p";} elseif($n<0){echo "n";} else {echo "z";}`, "z")
}

func Test_Interp_ForeachOrdering(t *testing.T) {
	wantOutput(t, `$a=["x","y","z"]; foreach($a as $v){ echo $v; }`, "xyz")
}

func Test_Interp_ForLoopDesugaring(t *testing.T) {
	wantOutput(t, `for($i=0;$i<3;$i=$i+1){ echo $i; }`, "012")
}

func Test_Interp_UndefinedVariable(t *testing.T) {
	wantOutputContains(t, `echo $missing;`, "Runtime Error: Undefined variable '$missing'")
}

// --- operators & coercion --------------------------------------------------

func Test_Interp_PlusNumbersAddsOtherwiseConcats(t *testing.T) {
	wantOutput(t, `echo 1 + 2;`, "3")
	wantOutput(t, `echo "1" + 2;`, "12")
	wantOutput(t, `echo 1 + "a";`, "1a")
	wantOutput(t, `echo true + "!";`, "true!")
}

func Test_Interp_DotAlwaysConcats(t *testing.T) {
	wantOutput(t, `echo 1 . 2;`, "12")
	wantOutput(t, `echo null . false . [1,2];`, "nullfalse[1, 2]")
}

func Test_Interp_NumericOperators(t *testing.T) {
	wantOutput(t, `echo 7 - 2;`, "5")
	wantOutput(t, `echo "3" * "4";`, "12")
	wantOutput(t, `echo 7 / 2;`, "3.5")
	wantOutput(t, `echo 7 % 4;`, "3")
	wantOutput(t, `echo 2 ** 10;`, "1024")
	wantOutput(t, `echo -"5";`, "-5")
	wantOutput(t, `echo 1 - 0.9;`, "0.09999999999999998")
}

func Test_Interp_NumberFormatting(t *testing.T) {
	wantOutput(t, `echo 10.0;`, "10")
	wantOutput(t, `echo 3.14;`, "3.14")
	wantOutput(t, `echo 0 - 0.5;`, "-0.5")
}

func Test_Interp_Comparisons(t *testing.T) {
	wantOutput(t, `echo 1 < 2;`, "true")
	wantOutput(t, `echo 2 <= 1;`, "false")
	wantOutput(t, `echo "b" > "a";`, "true")
	wantOutput(t, `echo "10" < 9;`, "false")
}

func Test_Interp_LooseEquality(t *testing.T) {
	wantOutput(t, `echo null == null;`, "true")
	wantOutput(t, `echo null == false;`, "false")
	wantOutput(t, `echo null == 0;`, "false")
	wantOutput(t, `echo 1 == "1";`, "true")
	wantOutput(t, `echo 1 == "2";`, "false")
	wantOutput(t, `echo true == 1;`, "true")
	wantOutput(t, `echo false == 0;`, "true")
	wantOutput(t, `echo "a" == "a";`, "true")
	wantOutput(t, `echo [1,2] == [1,2];`, "true")
	wantOutput(t, `echo 1 != "1";`, "false")
}

func Test_Interp_StrictEquality(t *testing.T) {
	wantOutput(t, `echo 1 === "1";`, "false")
	wantOutput(t, `echo 1 === 1;`, "true")
	wantOutput(t, `echo true === 1;`, "false")
	wantOutput(t, `echo null === null;`, "true")
	wantOutput(t, `echo [1,2] === [1,2];`, "true")
	wantOutput(t, `echo [1,2] === [2,1];`, "false")
	wantOutput(t, `echo 1 !== "1";`, "true")
}

func Test_Interp_Truthiness(t *testing.T) {
	// Only null and false are falsy; 0, "", [] are all truthy.
	wantOutput(t, `if(0){echo "t";}else{echo "f";}`, "t")
	wantOutput(t, `if(""){echo "t";}else{echo "f";}`, "t")
	wantOutput(t, `if([]){echo "t";}else{echo "f";}`, "t")
	wantOutput(t, `if(null){echo "t";}else{echo "f";}`, "f")
	wantOutput(t, `if(false){echo "t";}else{echo "f";}`, "f")
	wantOutput(t, `echo !null;`, "true")
	wantOutput(t, `echo !0;`, "false")
}

func Test_Interp_LogicalReturnsDecidingValue(t *testing.T) {
	wantOutput(t, `echo "a" || "b";`, "a")
	wantOutput(t, `echo null || "b";`, "b")
	wantOutput(t, `echo "a" && "b";`, "b")
	wantOutput(t, `echo false && "b";`, "false")
}

func Test_Interp_ShortCircuitSkipsRightOperand(t *testing.T) {
	wantOutput(t, `$x = 0; true || ($x = 1); echo $x;`, "0")
	wantOutput(t, `$y = 0; false && ($y = 1); echo $y;`, "0")
	wantOutput(t, `$z = 0; false || ($z = 1); echo $z;`, "1")
}

// --- scoping & closures ----------------------------------------------------

func Test_Interp_ImplicitAssignEscapesBlock(t *testing.T) {
	// An undeclared assignment inside a block lands program-wide.
	wantOutput(t, `{ $a = 1; } echo $a;`, "1")
}

func Test_Interp_AssignOverwritesEnclosing(t *testing.T) {
	wantOutput(t, `var $b = 0; { $b = 5; } echo $b;`, "5")
}

func Test_Interp_VarShadowsInBlock(t *testing.T) {
	wantOutput(t, `var $c = 1; { var $c = 2; echo $c; } echo $c;`, "21")
}

func Test_Interp_ClosureSeesBindingsAtCallTime(t *testing.T) {
	src := heredoc.Doc(`
		var $greeting = "hi";
		function greet(){ return $greeting; }
		$greeting = "bye";
		echo greet();
	`)
	wantOutput(t, src, "bye")
}

func Test_Interp_ClosureCapturesDefiningFrame(t *testing.T) {
	src := heredoc.Doc(`
		function counter() {
			var $n = 0;
			function bump() {
				$n = $n + 1;
				return $n;
			}
			return bump;
		}
		$c = counter();
		echo $c();
		echo $c();
		echo $c();
	`)
	wantOutput(t, src, "123")
}

func Test_Interp_ForeachScopesItemPerIteration(t *testing.T) {
	src := heredoc.Doc(`
		var $v = "outer";
		foreach([1,2] as $v) { echo $v; }
		echo $v;
	`)
	wantOutput(t, src, "12outer")
}

func Test_Interp_ParamsDoNotLeak(t *testing.T) {
	src := heredoc.Doc(`
		function id($p){ return $p; }
		id(7);
		echo $p;
	`)
	wantOutputContains(t, src, "Runtime Error: Undefined variable '$p'")
}

// --- calls & runtime errors ------------------------------------------------

func Test_Interp_CallNonCallable(t *testing.T) {
	wantOutputContains(t, `$f = 3; $f();`, "Runtime Error: Can only call functions and classes at line 1")
}

func Test_Interp_ArityMismatch(t *testing.T) {
	wantOutputContains(t, `function f($a){ return $a; } f(1, 2);`,
		"Runtime Error: Expected 1 arguments but got 2")
}

func Test_Interp_BareReturnYieldsNull(t *testing.T) {
	wantOutput(t, `function f(){ return; } echo f();`, "null")
}

func Test_Interp_ReturnAtTopLevel(t *testing.T) {
	wantOutputContains(t, `return 1;`, "Runtime Error: Cannot return from top-level code at line 1")
}

func Test_Interp_ForeachNonArray(t *testing.T) {
	wantOutputContains(t, `foreach("nope" as $v){ echo $v; }`,
		"Runtime Error: Foreach expected array, got string")
}

func Test_Interp_ErrorStopsExecution(t *testing.T) {
	got := Run(`echo "before"; echo $nope; echo "after";`)
	if !strings.HasPrefix(got, "before") {
		t.Fatalf("output before the fault must be kept: %q", got)
	}
	if strings.Contains(got, "after") {
		t.Fatalf("execution must stop at the fault: %q", got)
	}
	if !strings.Contains(got, "Runtime Error:") {
		t.Fatalf("fault must land in the buffer: %q", got)
	}
}

func Test_Interp_ErrorCarriesLine(t *testing.T) {
	wantOutputContains(t, "$a = 1;\necho $a;\necho $nope;", "at line 3")
}

func Test_Interp_ArgumentsEvaluateLeftToRight(t *testing.T) {
	src := heredoc.Doc(`
		function three($a, $b, $c) { return $a . $b . $c; }
		$log = "";
		echo three($log = $log . "1", $log = $log . "2", $log = $log . "3");
	`)
	wantOutput(t, src, "112123")
}

func Test_Interp_RecursionFibonacci(t *testing.T) {
	src := heredoc.Doc(`
		function fib($n) {
			if ($n < 2) { return $n; }
			return fib($n - 1) + fib($n - 2);
		}
		for ($i = 0; $i < 8; $i = $i + 1) {
			echo fib($i) . " ";
		}
	`)
	wantOutput(t, src, "0 1 1 2 3 5 8 13 ")
}

func Test_Interp_WhileLoop(t *testing.T) {
	src := heredoc.Doc(`
		var $n = 3;
		while ($n > 0) {
			echo $n;
			$n = $n - 1;
		}
		echo "go";
	`)
	wantOutput(t, src, "321go")
}

func Test_Interp_FizzBuzzEndToEnd(t *testing.T) {
	src := heredoc.Doc(`
		function fizzbuzz($n) {
			for ($i = 1; $i <= $n; $i = $i + 1) {
				if ($i % 15 == 0) { echo "FizzBuzz"; }
				elseif ($i % 3 == 0) { echo "Fizz"; }
				elseif ($i % 5 == 0) { echo "Buzz"; }
				else { echo $i; }
				echo "
";
			}
		}
		fizzbuzz(15);
	`)
	want := "1\n2\nFizz\n4\nBuzz\nFizz\n7\n8\nFizz\nBuzz\n11\nFizz\n13\n14\nFizzBuzz\n"
	wantOutput(t, src, want)
}

// --- sessions --------------------------------------------------------------

func Test_Interp_PersistentSession(t *testing.T) {
	ip := NewInterpreter()
	if out := ip.Run(`$x = 40;`); out != "" {
		t.Fatalf("unexpected output: %q", out)
	}
	if out := ip.Run(`echo $x + 2;`); out != "42" {
		t.Fatalf("state should persist across Run calls, got %q", out)
	}
}

func Test_Interp_SessionRecoversAfterError(t *testing.T) {
	ip := NewInterpreter()
	if out := ip.Run(`echo $boom;`); !strings.Contains(out, "Runtime Error:") {
		t.Fatalf("expected a runtime error, got %q", out)
	}
	if out := ip.Run(`echo "ok";`); out != "ok" {
		t.Fatalf("session should keep working after a fault, got %q", out)
	}
}

func Test_Interp_EchoFunctionValue(t *testing.T) {
	wantOutput(t, `function f(){ return 1; } echo f;`, "<fn f>")
	wantOutput(t, `echo strlen;`, "<fn strlen>")
}

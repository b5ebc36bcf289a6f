// Package coverage turns a Cobertura coverage report into dense per-line
// annotations for the files under review.
//
// A report only lists the lines the instrumenter knew about, in no promised
// order. Reconcile lays those sparse entries over the real line count of each
// file so every annotation has exactly one mark per physical line:
//
//	report, err := coverage.ReadReport("target/scala-2.12/coverage-report/cobertura.xml")
//	if err != nil {
//		return err
//	}
//	files, err := coverage.Reconcile(report, coverage.OSFileSystem{Root: root}, changed)
//	if err != nil {
//		return err
//	}
//	fmt.Println(files["src/main/scala/foo/Bar.scala"]) // e.g. "NNUNNNCNNN"
package coverage

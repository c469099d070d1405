// Package platform holds the three presence predicates used to classify a
// client runtime: native shell, messaging mini-app and installed PWA.
//
// Each predicate reads an evidence.Collector and nothing else. The mini-app
// check is dual-source: the third-party SDK and the first-party bridge are
// two Source implementations combined with FirstMatch, SDK first.
//
//	if ok, info := platform.DetectMiniApp(snapshot); ok {
//		fmt.Println(info.Platform, info.Platform.Family())
//	}
//
// The predicates are independent. Choosing between them is the detector's
// job.
package platform

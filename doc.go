// Package folio renders a personal portfolio as a scrolling [Ebitengine]
// scene: biography, skills, experience, projects, education,
// certifications, volunteering and contact details, with canvas
// animations and scroll-triggered reveals.
//
// # Quick start
//
// Load the content and hand it to [NewApp], then [Run]:
//
//	p, err := content.Default()
//	if err != nil {
//		log.Fatal(err)
//	}
//	app, err := folio.NewApp(p, folio.AppOptions{Background: true})
//	if err != nil {
//		log.Fatal(err)
//	}
//	folio.Run(app, folio.RunConfig{Title: p.Name, Resizable: true})
//
// # Page
//
// [NewPage] composes the sections in a fixed order ([SectionHero] through
// [SectionFooter]) with one [Card] per content entry. A page does not need a
// display: lay it out with a [FixedMeasurer] and draw it onto a
// [RasterCanvas] for headless rendering.
//
// # Visibility
//
// Every card, counter and impact bar owns a [Trigger]. The page's
// [Observer] measures them against the viewport on each Update; a trigger
// fires once and stays settled, after which the element is no longer
// observed.
//
// # Animations
//
// Project cards mount one animation from the canvas package, chosen by the
// project's visual tag or its title. Hosts run only while their card is
// within one screen of the viewport and are stopped as soon as it leaves.
//
// # Automation
//
// [App.InjectClick], [App.InjectScroll] and friends queue synthetic input;
// [LoadTestScript] sequences them with waits and [App.Screenshot] captures.
//
// [Ebitengine]: https://ebitengine.org
package folio

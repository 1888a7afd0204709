// Package imagediff implements the state machine behind an image comparison
// widget: two images, "before" and "after", overlaid in a fixed-size
// container and presented in one of three modes.
//
//   - difference: a pixel difference composite, no continuous control
//   - fade: the after image cross-fades over the before image
//   - swipe: the after image is clipped to reveal the before image
//
// The widget never touches pixels. It writes declarative attribute and style
// changes to a render sink (Element) and learns image sizes from load events
// delivered by the caller (LoadEvent).
//
// # Structure
//
// A widget is bound to a Root from which six sub-elements are resolved once:
//
//	.image-diff__before img
//	.image-diff__after img
//	.image-diff__before
//	.image-diff__after
//	.image-diff__wrapper
//	.image-diff__inner
//
// A missing element fails construction with KindStructure.
//
// # Lifecycle
//
//	w, err := imagediff.New(root, "a.png", "b.png", imagediff.ModeFade)
//	w.ImageLoaded(imagediff.LoadEvent{Image: imagediff.ImageBefore, Generation: w.Generation(), Width: 300, Height: 200})
//	err = w.Fade(0.5)
//
// Update replaces the image pair and resets every prop, including the
// resolved size. The first load event after it fixes the size; any later one
// is ignored until the next Update.
//
// # Errors
//
// Misuse is reported synchronously as *Error with a Kind. Callers branch with
// errors.Is against the sentinels (ErrOutOfRange, ...) or with KindOf.
package imagediff

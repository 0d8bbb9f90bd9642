// Package photo prepares portrait photos for the photo field of a document.
//
// Preparation runs four stages:
//
//	segment   remove the background (Segmenter)
//	place     eye-centred crop onto the slot canvas (LandmarkDetector)
//	tone      greyscale, radial fade and a light blur
//	frame     thin translucent border
//
// Segmentation and landmark detection are external collaborators. The
// package ships HTTP adapters (RemoteSegmenter, RemoteDetector) and a
// Limiter that bounds concurrent calls into services that are not
// reentrant.
package photo

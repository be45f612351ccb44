//go:build darwin

package permissions

/*
#cgo darwin LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>

static Boolean mjIsTrusted(void) {
	return AXIsProcessTrusted();
}

static void mjPromptForTrust(void) {
	const void *keys[] = { kAXTrustedCheckOptionPrompt };
	const void *values[] = { kCFBooleanTrue };
	CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
	                                             &kCFTypeDictionaryKeyCallBacks,
	                                             &kCFTypeDictionaryValueCallBacks);
	AXIsProcessTrustedWithOptions(options);
	CFRelease(options);
}
*/
import "C"

type platformAuthorizer struct{}

func (platformAuthorizer) IsTrusted() bool {
	return C.mjIsTrusted() != C.Boolean(0)
}

func (platformAuthorizer) PromptForTrust() {
	C.mjPromptForTrust()
}

//go:build android

package android

/*
#include <jni.h>
#include <stdint.h>

static jint ksUnicodeChar(uintptr_t envp, jlong downTime, jlong eventTime,
		jint action, jint code, jint repeat, jint meta, jint device,
		jint scancode, jint flags, jint source) {
	JNIEnv* env = (JNIEnv*)envp;
	jclass cls = (*env)->FindClass(env, "android/view/KeyEvent");
	if (cls == NULL) {
		(*env)->ExceptionClear(env);
		return 0;
	}
	jint c = 0;
	jmethodID ctor = (*env)->GetMethodID(env, cls, "<init>", "(JJIIIIIIII)V");
	jmethodID get = (*env)->GetMethodID(env, cls, "getUnicodeChar", "()I");
	if (ctor != NULL && get != NULL) {
		jobject ev = (*env)->NewObject(env, cls, ctor, downTime, eventTime,
			action, code, repeat, meta, device, scancode, flags, source);
		if (ev != NULL) {
			c = (*env)->CallIntMethod(env, ev, get);
			(*env)->DeleteLocalRef(env, ev);
		}
	}
	if ((*env)->ExceptionCheck(env)) {
		(*env)->ExceptionClear(env);
		c = 0;
	}
	(*env)->DeleteLocalRef(env, cls);
	return c;
}
*/
import "C"

import "golang.org/x/mobile/app"

// jniResolver rebuilds an android.view.KeyEvent on the JVM and asks it for
// its Unicode character under the device key character map.
type jniResolver struct{}

func (jniResolver) UnicodeChar(ev *KeyEvent) rune {
	var c C.jint
	err := app.RunOnJVM(func(vm, env, ctx uintptr) error {
		c = C.ksUnicodeChar(C.uintptr_t(env),
			C.jlong(ev.DownTime), C.jlong(ev.EventTime),
			C.jint(ev.Action), C.jint(ev.KeyCode), C.jint(ev.Repeat),
			C.jint(ev.MetaState), C.jint(ev.DeviceID), C.jint(ev.ScanCode),
			C.jint(ev.Flags), C.jint(ev.Source))
		return nil
	})
	if err != nil {
		return 0
	}
	return rune(c)
}

// DefaultResolver returns the JNI-backed resolver.
func DefaultResolver() UnicodeResolver {
	return jniResolver{}
}

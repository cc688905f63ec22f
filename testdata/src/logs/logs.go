package logs

type androidLog struct{}

func (androidLog) v(tag, msg string)   {}
func (androidLog) d(tag, msg string)   {}
func (androidLog) i(tag, msg string)   {}
func (androidLog) w(tag, msg string)   {}
func (androidLog) e(tag, msg string)   {}
func (androidLog) wtf(tag, msg string) {}
func (androidLog) D(tag, msg string)   {}
func (androidLog) println(msg string)  {}

// Log mimics the platform logging API.
var Log androidLog

func logging() {
	Log.v("tag", "msg")   // want `Use SywLog instead`
	Log.d("tag", "msg")   // want `Use SywLog instead`
	Log.i("tag", "msg")   // want `Use SywLog instead`
	Log.w("tag", "msg")   // want `Use SywLog instead`
	Log.e("tag", "msg")   // want `Use SywLog instead`
	Log.wtf("tag", "msg") // want `Use SywLog instead`
	Log.D("tag", "msg")
	Log.println("msg")

	d("tag", "msg") // want `Use SywLog instead`
	_ = e{}
	print("builtin")
	_ = len("builtin")
	_ = string(rune(100))

	w() // want `special conditions` `Use SywLog instead`
}

// d shares its name with the logging API.
func d(tag, msg string) {}

type e struct{}

//annotation:com.annotations.CarefulNow
func w() {} // want w:`annotations\(com\.annotations\.CarefulNow\)`

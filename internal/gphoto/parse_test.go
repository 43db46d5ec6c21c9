package gphoto

import "testing"

func TestParseCurrent(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		wantOK bool
	}{
		{
			name:   "shutter speed",
			output: "Label: Shutter Speed\nReadonly: 0\nType: RADIO\nCurrent: 0.0040s\nChoice: 0 0.0002s\n",
			want:   "0.0040s",
			wantOK: true,
		},
		{
			name:   "iso",
			output: "Label: ISO Speed\nCurrent: 400\n",
			want:   "400",
			wantOK: true,
		},
		{
			name:   "value at end without newline",
			output: "Label: F-Number\nCurrent: f/5.6",
			want:   "f/5.6",
			wantOK: true,
		},
		{
			name:   "trailing carriage return is trimmed",
			output: "Current: Auto\r\nEND\r\n",
			want:   "Auto",
			wantOK: true,
		},
		{
			name:   "missing marker",
			output: "Label: ISO Speed\nType: RADIO\n",
			wantOK: false,
		},
		{
			name:   "empty output",
			output: "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCurrent(tt.output)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAutoDetect(t *testing.T) {
	output := `Model                          Port
----------------------------------------------------------
Nikon DSC D750                 usb:001,005
Canon EOS 5D Mark IV           usb:002,004
`
	cameras := ParseAutoDetect(output)
	if len(cameras) != 2 {
		t.Fatalf("expected 2 cameras, got %d: %+v", len(cameras), cameras)
	}

	want := []Camera{
		{Model: "Nikon DSC D750", Port: "usb:001,005"},
		{Model: "Canon EOS 5D Mark IV", Port: "usb:002,004"},
	}
	for i, w := range want {
		if cameras[i] != w {
			t.Errorf("camera %d = %+v, want %+v", i, cameras[i], w)
		}
	}
}

func TestParseAutoDetect_NoCameras(t *testing.T) {
	output := `Model                          Port
----------------------------------------------------------
`
	if cameras := ParseAutoDetect(output); len(cameras) != 0 {
		t.Errorf("expected no cameras, got %+v", cameras)
	}
	if cameras := ParseAutoDetect(""); len(cameras) != 0 {
		t.Errorf("expected no cameras for empty output, got %+v", cameras)
	}
}

func TestCountListedFiles(t *testing.T) {
	output := `There is no file in folder '/'.
There are 2 files in folder '/store_00010001/DCIM/100NCD750':
#1     DSC_0001.JPG               rd  6012 KB 6016x4016 image/jpeg 1700000000
#2     DSC_0001.NEF               rd 25112 KB image/x-nikon-nef 1700000000
`
	if got := CountListedFiles(output); got != 2 {
		t.Errorf("CountListedFiles() = %d, want 2", got)
	}
	if got := CountListedFiles(""); got != 0 {
		t.Errorf("CountListedFiles(\"\") = %d, want 0", got)
	}
}

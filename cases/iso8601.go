// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package cases

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/cpoole/avrobind/avroerr"
)

// durationToISO8601 renders d in ISO-8601 period notation
// ("P{d}DT{h}H{m}M{s}S"), the String case's culture-invariant format for
// time.Duration values.
func durationToISO8601(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	secPart := ""
	if d != 0 {
		secs := float64(d) / float64(time.Second)
		if secs == float64(int64(secs)) {
			secPart = fmt.Sprintf("%dS", int64(secs))
		} else {
			secPart = strconv.FormatFloat(secs, 'f', -1, 64) + "S"
		}
	}

	out := sign + "P"
	if days > 0 {
		out += fmt.Sprintf("%dD", days)
	}
	out += "T"
	if hours > 0 {
		out += fmt.Sprintf("%dH", hours)
	}
	if minutes > 0 {
		out += fmt.Sprintf("%dM", minutes)
	}
	if secPart != "" {
		out += secPart
	} else if hours == 0 && minutes == 0 && days == 0 {
		out += "0S"
	}
	return out
}

var iso8601DurationRE = regexp.MustCompile(`^(-)?P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:([\d.]+)S)?)?$`)

// iso8601ToDuration parses the period notation durationToISO8601 emits
// (and the common subset other encoders produce).
func iso8601ToDuration(s string) (time.Duration, error) {
	m := iso8601DurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0, avroerr.New(avroerr.Conversion, "%q is not a valid ISO-8601 duration", s)
	}
	var total time.Duration
	if m[2] != "" {
		days, _ := strconv.ParseInt(m[2], 10, 64)
		total += time.Duration(days) * 24 * time.Hour
	}
	if m[3] != "" {
		hours, _ := strconv.ParseInt(m[3], 10, 64)
		total += time.Duration(hours) * time.Hour
	}
	if m[4] != "" {
		minutes, _ := strconv.ParseInt(m[4], 10, 64)
		total += time.Duration(minutes) * time.Minute
	}
	if m[5] != "" {
		secs, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			return 0, avroerr.New(avroerr.Conversion, "%q has an invalid seconds component", s)
		}
		total += time.Duration(math.Round(secs * float64(time.Second)))
	}
	if m[1] == "-" {
		total = -total
	}
	return total, nil
}

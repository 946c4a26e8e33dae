package langdetect

import (
	"testing"
)

func BenchmarkDetectJava(b *testing.B) {
	code := []byte(`package com.example;

import java.util.List;

public class Main {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}`)
	b.ResetTimer()
	for range b.N {
		Detect("", code)
	}
}

func BenchmarkDetectByExtension(b *testing.B) {
	code := []byte("class A {}")
	b.ResetTimer()
	for range b.N {
		Detect("A.java", code)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	code := []byte("")
	b.ResetTimer()
	for range b.N {
		Detect("", code)
	}
}

func BenchmarkDetectSmall(b *testing.B) {
	code := []byte("hello")
	b.ResetTimer()
	for range b.N {
		Detect("", code)
	}
}

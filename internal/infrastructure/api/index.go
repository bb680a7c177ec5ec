package api

import "net/http"

func (h *StylingHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {

	html := `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>Fashion Assistant</title>
<script src="https://cdn.tailwindcss.com"></script>
<style>
body { font-family: Inter, system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
.preview-box{width:100%;height:260px;background:#f3f4f6;border:2px dashed #d1d5db;display:flex;align-items:center;justify-content:center;overflow:hidden}
.preview-box img{max-width:100%;max-height:100%;object-fit:contain}
.loader{border:8px solid #f3f3f3;border-top:8px solid #6366f1;border-radius:50%;width:56px;height:56px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)}100%{transform:rotate(360deg)}}
.advice{white-space:pre-wrap}
</style>
</head>
<body class="bg-gray-50 text-gray-800">
<div class="container mx-auto p-4 md:p-8 max-w-5xl">
<header class="text-center mb-8">
<h1 class="text-3xl md:text-4xl font-bold text-gray-900">Fashion Assistant</h1>
<p class="text-gray-600 mt-2">Describe your style or occasion, optionally upload a clothing photo, and get advice with outfit images.</p>
</header>
<main class="bg-white p-6 md:p-8 rounded-2xl shadow-lg">
<form id="style-form">
<div class="grid grid-cols-1 md:grid-cols-2 gap-6 mb-6">
<div>
<label for="text" class="block text-lg font-semibold mb-2 text-gray-700">1. Your style or occasion</label>
<textarea id="text" name="text" rows="6" class="w-full border border-gray-300 rounded-lg p-3 focus:ring-2 focus:ring-indigo-500" placeholder="E.g. I need an outfit for a summer garden wedding"></textarea>
</div>
<div>
<label class="block text-lg font-semibold mb-2 text-gray-700">2. Clothing photo (optional)</label>
<div id="image-preview" class="preview-box rounded-lg mb-3"><span class="text-gray-500">Preview</span></div>
<label class="inline-flex items-center px-4 py-2 rounded-full bg-gradient-to-r from-indigo-500 to-blue-500 text-white shadow hover:shadow-lg cursor-pointer">
<span>Choose file</span>
<input type="file" id="image" name="image" accept="image/*" class="hidden">
</label>
<span id="image-name" class="ml-2 text-sm text-gray-500"></span>
</div>
</div>
<div class="grid grid-cols-2 md:grid-cols-4 gap-4 mb-6">
<div><label for="style" class="block text-sm font-medium text-gray-700 mb-1">Style</label><select id="style" name="style" class="w-full border border-gray-300 rounded-lg p-2"></select></div>
<div><label for="season" class="block text-sm font-medium text-gray-700 mb-1">Season</label><select id="season" name="season" class="w-full border border-gray-300 rounded-lg p-2"></select></div>
<div><label for="occasion" class="block text-sm font-medium text-gray-700 mb-1">Occasion</label><select id="occasion" name="occasion" class="w-full border border-gray-300 rounded-lg p-2"></select></div>
<div><label for="language" class="block text-sm font-medium text-gray-700 mb-1">Language</label><select id="language" name="language" class="w-full border border-gray-300 rounded-lg p-2"></select></div>
</div>
<div class="flex flex-wrap items-center gap-6 mb-6">
<label class="inline-flex items-center"><input type="checkbox" id="use_variations" name="use_variations" value="true" class="mr-2">Use variations of my photo</label>
<label class="inline-flex items-center">Number of images
<input type="range" id="num_variations" name="num_variations" min="1" max="5" value="3" class="mx-2">
<span id="num_variations_value">3</span></label>
</div>
<div class="text-center">
<button type="submit" id="submit-btn" class="px-8 py-3 bg-indigo-600 text-white rounded-lg hover:bg-indigo-700 font-semibold shadow">Get styling advice</button>
</div>
</form>
<p id="error-message" class="hidden mt-4 text-red-600 text-center"></p>
<section id="results" class="hidden mt-8">
<div class="grid grid-cols-1 md:grid-cols-2 gap-6 mb-6">
<div><h2 class="text-lg font-semibold mb-2">Image description</h2><p id="caption" class="text-gray-700"></p></div>
<div><h2 class="text-lg font-semibold mb-2">Styling advice</h2><p id="advice" class="advice text-gray-700"></p></div>
</div>
<h2 class="text-lg font-semibold mb-2">Outfit images</h2>
<div id="gallery" class="grid grid-cols-2 md:grid-cols-3 gap-4"></div>
</section>
<div id="loading" class="hidden flex justify-center mt-8"><div class="loader"></div></div>
</main>
</div>
<script>
const form = document.getElementById('style-form');
const submitBtn = document.getElementById('submit-btn');
const errorMessage = document.getElementById('error-message');
const results = document.getElementById('results');
const loading = document.getElementById('loading');

function fillSelect(id, values, selected) {
    const el = document.getElementById(id);
    el.innerHTML = '';
    values.forEach(v => {
        const opt = document.createElement('option');
        opt.value = v;
        opt.textContent = v;
        if (v === selected) opt.selected = true;
        el.appendChild(opt);
    });
}

fetch('/api/options').then(r => r.json()).then(c => {
    fillSelect('style', c.styles, 'None');
    fillSelect('season', c.seasons, 'None');
    fillSelect('occasion', c.occasions, 'None');
    fillSelect('language', c.languages, 'en');
});

document.getElementById('num_variations').addEventListener('input', e => {
    document.getElementById('num_variations_value').textContent = e.target.value;
});

document.getElementById('image').addEventListener('change', e => {
    const file = e.target.files[0];
    const preview = document.getElementById('image-preview');
    document.getElementById('image-name').textContent = file ? file.name : '';
    if (!file) { preview.innerHTML = '<span class="text-gray-500">Preview</span>'; return; }
    const img = document.createElement('img');
    img.src = URL.createObjectURL(file);
    preview.innerHTML = '';
    preview.appendChild(img);
});

function renderResult(data) {
    // caption and advice are sanitized server side
    document.getElementById('caption').innerHTML = data.caption || '';
    document.getElementById('advice').innerHTML = data.advice || '';
    const gallery = document.getElementById('gallery');
    gallery.innerHTML = '';
    (data.images || []).forEach(img => {
        const cell = document.createElement('div');
        cell.className = 'preview-box rounded-lg';
        if (img.error) {
            const msg = document.createElement('span');
            msg.className = 'text-red-500 text-sm p-2';
            msg.innerHTML = img.error;
            cell.appendChild(msg);
        } else {
            const el = document.createElement('img');
            el.src = 'data:' + img.type + ';base64,' + img.data;
            el.alt = img.id;
            cell.appendChild(el);
        }
        gallery.appendChild(cell);
    });
    results.classList.remove('hidden');
}

form.addEventListener('submit', async e => {
    e.preventDefault();
    errorMessage.classList.add('hidden');
    results.classList.add('hidden');
    loading.classList.remove('hidden');
    submitBtn.disabled = true;
    submitBtn.textContent = 'Generating...';
    try {
        const resp = await fetch('/style', { method: 'POST', body: new FormData(form) });
        const data = await resp.json();
        if (data.result_id) renderResult(data);
        if (!resp.ok || !data.success) throw new Error(data.error || 'Request failed');
    } catch (err) {
        console.error(err);
        errorMessage.textContent = 'Error: ' + err.message;
        errorMessage.classList.remove('hidden');
    } finally {
        loading.classList.add('hidden');
        submitBtn.disabled = false;
        submitBtn.textContent = 'Get styling advice';
    }
});
</script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Write([]byte(html))
}
